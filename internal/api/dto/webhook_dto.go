package dto

import "encoding/json"

// WebhookRequest is the form submission payload.
type WebhookRequest struct {
	Description  string `json:"description"`
	Categoria    string `json:"categoria"`
	Priorita     string `json:"priorita"`
	Email        string `json:"email"`
	LinkOfRecord string `json:"link_of_record"`
	Attachments  []any  `json:"attachments"`
}

// WebhookResponse reports the routing outcome.
type WebhookResponse struct {
	OK        bool            `json:"ok"`
	RoutedTo  string          `json:"routed_to"`
	Reason    string          `json:"reason,omitempty"`
	RequestID string          `json:"request_id,omitempty"`
	Title     string          `json:"title,omitempty"`
	Created   *CreatedItem    `json:"created,omitempty"`
	Notice    *NoticeResponse `json:"notice,omitempty"`
	AI        json.RawMessage `json:"ai,omitempty"`
}

// CreatedItem identifies the board item.
type CreatedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// NoticeResponse annotates the clarification email.
type NoticeResponse struct {
	Attempted bool   `json:"attempted"`
	Sent      bool   `json:"sent"`
	Error     string `json:"error,omitempty"`
}

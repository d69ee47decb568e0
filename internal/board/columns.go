package board

import (
	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/domain"
	"github.com/spec-kit/ticket-router/internal/triage"
)

// LabelValue sets a status or dropdown column by label.
type LabelValue struct {
	Label string `json:"label"`
}

// EmailValue sets an email column.
type EmailValue struct {
	Email string `json:"email"`
	Text  string `json:"text"`
}

// LongTextValue sets a long text column.
type LongTextValue struct {
	Text string `json:"text"`
}

// ColumnValues builds the column_values mapping for ticket. Columns without
// a configured id, and empty values, are left out.
func ColumnValues(ticket domain.Ticket, ids config.ColumnIDs) map[string]any {
	values := make(map[string]any)
	set := func(id string, empty bool, v any) {
		if id == "" || empty {
			return
		}
		values[id] = v
	}

	set(ids.Description, ticket.Description == "", LongTextValue{Text: ticket.Description})
	set(ids.Email, ticket.Reporter.Address == "", EmailValue{Email: ticket.Reporter.Address, Text: ticket.Reporter.Display})
	set(ids.Category, ticket.Category == "", LabelValue{Label: string(ticket.Category)})
	set(ids.Priority, ticket.Priority == "", LabelValue{Label: string(ticket.Priority)})
	set(ids.Attachments, len(ticket.Attachments) == 0, triage.JoinAttachments(ticket.Attachments))
	set(ids.Link, ticket.LinkOfRecord == "", LongTextValue{Text: ticket.LinkOfRecord})
	return values
}

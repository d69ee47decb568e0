package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-router/internal/api/dto"
	"github.com/spec-kit/ticket-router/internal/domain"
	"github.com/spec-kit/ticket-router/internal/observability"
	"github.com/spec-kit/ticket-router/internal/service"
	apperrors "github.com/spec-kit/ticket-router/pkg/util"
)

// WebhookHandler receives form submissions.
type WebhookHandler struct {
	router *service.RouterService
}

// NewWebhookHandler constructs handler.
func NewWebhookHandler(router *service.RouterService) *WebhookHandler {
	return &WebhookHandler{router: router}
}

// Receive POST /webhook. The body is read as JSON whatever its Content-Type.
func (h *WebhookHandler) Receive(c *fiber.Ctx) error {
	var req dto.WebhookRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	sub := domain.NewSubmission(req.Description, req.Categoria, req.Priorita, req.Email, req.LinkOfRecord, req.Attachments)
	result, err := h.router.Route(c.UserContext(), sub)
	if err != nil {
		return err
	}
	return c.JSON(webhookResponse(result, observability.RequestID(c)))
}

func webhookResponse(result *service.RouteResult, requestID string) dto.WebhookResponse {
	resp := dto.WebhookResponse{
		OK:        result.Decision.Action == domain.ActionCreate,
		RoutedTo:  result.Decision.RoutedTo(),
		Reason:    string(result.Decision.Reason),
		RequestID: requestID,
	}
	if result.Verdict != nil {
		resp.AI = result.Verdict.Raw
	}
	if result.Decision.Ticket != nil {
		resp.Title = result.Decision.Ticket.Title
	}
	if result.Created != nil {
		resp.Created = &dto.CreatedItem{ID: result.Created.ID, Name: result.Created.Name}
	}
	if result.Decision.Action == domain.ActionAskClarify {
		notice := &dto.NoticeResponse{Attempted: result.Notice.Attempted, Sent: result.Notice.Sent}
		if result.Notice.Err != nil {
			notice.Error = result.Notice.Err.Error()
		}
		resp.Notice = notice
	}
	return resp
}

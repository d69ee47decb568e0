package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Collaborators reports which external collaborators are configured.
type Collaborators struct {
	Board  bool
	Oracle bool
	Mailer bool
}

// HealthHandler responds to liveness and readiness probes.
type HealthHandler struct {
	serviceName   string
	version       string
	collaborators Collaborators
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version string, collaborators Collaborators) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, collaborators: collaborators}
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness. Only the board is required; the oracle and
// mailer are optional.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	deps := fiber.Map{
		"board":  status(h.collaborators.Board),
		"oracle": status(h.collaborators.Oracle),
		"mailer": status(h.collaborators.Mailer),
	}
	if h.collaborators.Board {
		return c.JSON(fiber.Map{
			"status":       "ready",
			"dependencies": deps,
		})
	}

	return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    "DEPENDENCY_UNAVAILABLE",
			"message": "ticket board not configured",
			"details": deps,
		},
	})
}

func status(configured bool) string {
	if configured {
		return "configured"
	}
	return "disabled"
}

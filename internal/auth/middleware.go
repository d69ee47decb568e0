package auth

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/ticket-router/internal/config"
	apperrors "github.com/spec-kit/ticket-router/pkg/util"
)

// SecretMiddleware rejects requests whose secret header does not match the
// configured shared secret.
type SecretMiddleware struct {
	header string
	secret []byte
}

// NewSecretMiddleware constructs middleware.
func NewSecretMiddleware(cfg config.AuthConfig) *SecretMiddleware {
	return &SecretMiddleware{header: cfg.HeaderName, secret: []byte(cfg.SharedSecret)}
}

// Handle enforces the shared secret before the body is read.
func (m *SecretMiddleware) Handle(c *fiber.Ctx) error {
	got := c.Get(m.header)
	if got == "" {
		return apperrors.NewUnauthorized("missing secret header")
	}
	if len(m.secret) == 0 || subtle.ConstantTimeCompare([]byte(got), m.secret) != 1 {
		return apperrors.NewUnauthorized("bad secret")
	}
	return c.Next()
}

package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestToDomainError(t *testing.T) {
	cause := errors.New("board down")
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"unauthorized", NewUnauthorized("bad secret"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"wrapped bad gateway", fmt.Errorf("create: %w", NewBadGateway("board failed", nil, cause)), "DOWNSTREAM_FAILURE", http.StatusBadGateway},
		{"fiber error", fiber.ErrNotFound, "HTTP_ERROR", http.StatusNotFound},
		{"plain", cause, "INTERNAL_ERROR", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			assert.Equal(t, tt.wantCode, de.Code)
			assert.Equal(t, tt.wantStatus, de.HTTPStatus)
		})
	}
	assert.Nil(t, ToDomainError(nil))
}

func TestBadGatewayUnwraps(t *testing.T) {
	cause := errors.New("timeout")
	err := NewBadGateway("board failed", map[string]any{"board_id": "1"}, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "board failed: timeout", err.Error())
}

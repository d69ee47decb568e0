package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("FORMS_SHARED_SECRET", "s3cret")
	t.Setenv("MONDAY_API_TOKEN", "token")
	t.Setenv("MONDAY_BOARD_ID", "123456")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SMTP_HOST", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "X-Forms-Secret", cfg.Auth.HeaderName)
	assert.Equal(t, "topics", cfg.Monday.GroupID)
	assert.Equal(t, "https://api.monday.com/v2", cfg.Monday.APIURL)
	assert.Equal(t, "gemini-1.5-flash", cfg.Gemini.Model)
	assert.Equal(t, 45*time.Second, cfg.Gemini.Timeout())
	assert.Equal(t, 30*time.Second, cfg.Monday.Timeout())
	assert.Equal(t, 465, cfg.Mail.SSLPort)
	assert.Equal(t, 587, cfg.Mail.StartTLSPort)
	assert.False(t, cfg.Gemini.Enabled())
	assert.False(t, cfg.Mail.Enabled())
	assert.Equal(t, "0.0.0.0:8000", cfg.App.Addr())
}

func TestLoadOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("GEMINI_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("MONDAY_COLUMN_EMAIL", "email_mk1")
	t.Setenv("MONDAY_COLUMN_LINK_LONGTEXT", "long_text_mk2")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_USERNAME", "bot@example.com")
	t.Setenv("SMTP_FROM", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Gemini.Enabled())
	assert.Equal(t, 45*time.Second, cfg.Gemini.Timeout(), "invalid ints fall back to the default")
	assert.Equal(t, "email_mk1", cfg.Monday.Columns.Email)
	assert.Equal(t, "long_text_mk2", cfg.Monday.Columns.Link)
	assert.Equal(t, "bot@example.com", cfg.Mail.From, "sender defaults to the SMTP username")
	assert.True(t, cfg.Mail.Enabled())
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("FORMS_SHARED_SECRET", "")
	t.Setenv("MONDAY_API_TOKEN", "")
	t.Setenv("MONDAY_BOARD_ID", "42")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FORMS_SHARED_SECRET")
	assert.Contains(t, err.Error(), "MONDAY_API_TOKEN")
	assert.NotContains(t, err.Error(), "MONDAY_BOARD_ID")
}

func TestRequestTimeoutDisabled(t *testing.T) {
	assert.Equal(t, time.Duration(0), AppConfig{RequestTimeoutSeconds: 0}.RequestTimeout())
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service. It is built once
// by Load and passed by value to every component.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	Auth   AuthConfig
	Gemini GeminiConfig
	Monday MondayConfig
	Mail   MailConfig
	Notice NoticeConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig holds the shared secret expected in the webhook header.
type AuthConfig struct {
	SharedSecret string
	HeaderName   string
}

// GeminiConfig configures the classification oracle. An empty APIKey
// disables the oracle and every submission goes through the rule-based gate.
type GeminiConfig struct {
	APIKey         string
	Model          string
	TimeoutSeconds int
}

// MondayConfig holds board credentials and column identifiers.
type MondayConfig struct {
	APIToken       string
	APIURL         string
	BoardID        string
	GroupID        string
	TimeoutSeconds int
	Columns        ColumnIDs
}

// ColumnIDs maps ticket fields to board column ids (the column "id", not its title).
// An empty id means the field is not written.
type ColumnIDs struct {
	Email       string
	Category    string
	Priority    string
	Description string
	Attachments string
	Link        string
}

// MailConfig configures the SMTP transport for clarification notices.
type MailConfig struct {
	Host           string
	SSLPort        int
	StartTLSPort   int
	Username       string
	Password       string
	From           string
	TimeoutSeconds int
}

// NoticeConfig holds the clarification notice template values.
type NoticeConfig struct {
	Subject    string
	FormLink   string
	SenderName string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "ticket-router"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 90),
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			SharedSecret: os.Getenv("FORMS_SHARED_SECRET"),
			HeaderName:   getEnv("FORMS_SECRET_HEADER", "X-Forms-Secret"),
		},
		Gemini: geminiFromEnv(),
		Monday: MondayConfig{
			APIToken:       os.Getenv("MONDAY_API_TOKEN"),
			APIURL:         getEnv("MONDAY_API_URL", "https://api.monday.com/v2"),
			BoardID:        os.Getenv("MONDAY_BOARD_ID"),
			GroupID:        getEnv("MONDAY_GROUP_NEW", "topics"),
			TimeoutSeconds: getEnvAsInt("MONDAY_TIMEOUT_SECONDS", 30),
			Columns: ColumnIDs{
				Email:       os.Getenv("MONDAY_COLUMN_EMAIL"),
				Category:    os.Getenv("MONDAY_COLUMN_CATEGORY"),
				Priority:    os.Getenv("MONDAY_COLUMN_PRIORITY"),
				Description: os.Getenv("MONDAY_COLUMN_DESCRIPTION"),
				Attachments: os.Getenv("MONDAY_COLUMN_ATTACHMENTS"),
				Link:        os.Getenv("MONDAY_COLUMN_LINK_LONGTEXT"),
			},
		},
		Mail: MailConfig{
			Host:           os.Getenv("SMTP_HOST"),
			SSLPort:        getEnvAsInt("SMTP_SSL_PORT", 465),
			StartTLSPort:   getEnvAsInt("SMTP_STARTTLS_PORT", 587),
			Username:       os.Getenv("SMTP_USERNAME"),
			Password:       os.Getenv("SMTP_PASSWORD"),
			From:           getEnv("SMTP_FROM", os.Getenv("SMTP_USERNAME")),
			TimeoutSeconds: getEnvAsInt("SMTP_TIMEOUT_SECONDS", 20),
		},
		Notice: NoticeConfig{
			Subject:    getEnv("NOTICE_SUBJECT", "Ticket non creato: servono più dettagli"),
			FormLink:   os.Getenv("NOTICE_FORM_LINK"),
			SenderName: getEnv("NOTICE_SENDER_NAME", "Supporto"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadGemini reads only the oracle settings. Used by tools that never
// serve the webhook.
func LoadGemini() GeminiConfig {
	_ = godotenv.Load()
	return geminiFromEnv()
}

func geminiFromEnv() GeminiConfig {
	return GeminiConfig{
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		Model:          getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		TimeoutSeconds: getEnvAsInt("GEMINI_TIMEOUT_SECONDS", 45),
	}
}

// Validate checks the settings the service cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Auth.SharedSecret == "" {
		missing = append(missing, "FORMS_SHARED_SECRET")
	}
	if c.Monday.APIToken == "" {
		missing = append(missing, "MONDAY_API_TOKEN")
	}
	if c.Monday.BoardID == "" {
		missing = append(missing, "MONDAY_BOARD_ID")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required env vars: %s", strings.Join(missing, ", "))
	}
	if c.Auth.HeaderName == "" {
		return errors.New("FORMS_SECRET_HEADER must not be empty")
	}
	return nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	return seconds(a.RequestTimeoutSeconds)
}

// Enabled reports whether the oracle should be consulted.
func (g GeminiConfig) Enabled() bool {
	return strings.TrimSpace(g.APIKey) != ""
}

// Timeout bounds one oracle call.
func (g GeminiConfig) Timeout() time.Duration {
	return seconds(g.TimeoutSeconds)
}

// Timeout bounds one board call.
func (m MondayConfig) Timeout() time.Duration {
	return seconds(m.TimeoutSeconds)
}

// Enabled reports whether clarification notices can be sent.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != ""
}

// Timeout bounds one delivery attempt.
func (m MailConfig) Timeout() time.Duration {
	return seconds(m.TimeoutSeconds)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/spec-kit/ticket-router/internal/config"
)

// generator is the part of *genai.GenerativeModel the client needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// GeminiClient consults Gemini for a routing verdict. One call per
// submission, no retries.
type GeminiClient struct {
	client    *genai.Client
	model     generator
	modelName string
	timeout   time.Duration
	logger    *zap.Logger
}

// NewGeminiClient creates a client for the configured model.
func NewGeminiClient(ctx context.Context, cfg config.GeminiConfig, logger *zap.Logger) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemInstruction)},
	}
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	logger.Info("gemini oracle initialized", zap.String("model", cfg.Model))

	return &GeminiClient{
		client:    client,
		model:     model,
		modelName: cfg.Model,
		timeout:   cfg.Timeout(),
		logger:    logger,
	}, nil
}

// Close releases the underlying client.
func (c *GeminiClient) Close() error {
	if c.client == nil {
		return nil
	}
	return c.client.Close()
}

// Consult asks the model for a verdict. Every failure, timeouts included,
// comes back as an unavailable result.
func (c *GeminiClient) Consult(ctx context.Context, in Input) Result {
	payload, err := json.Marshal(in)
	if err != nil {
		return Unavailable(fmt.Errorf("encode submission: %w", err))
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	resp, err := c.model.GenerateContent(ctx, genai.Text("Input JSON to evaluate:\n"+string(payload)))
	if err != nil {
		return Unavailable(fmt.Errorf("gemini API error: %w", err))
	}

	text, err := replyText(resp)
	if err != nil {
		return Unavailable(err)
	}

	verdict, err := ParseVerdict(text)
	if err != nil {
		c.logger.Debug("gemini reply rejected", zap.String("model", c.modelName), zap.String("reply", text), zap.Error(err))
		return Unavailable(err)
	}
	return Delivered(verdict)
}

func replyText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("%w: empty response from gemini", ErrMalformedVerdict)
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("%w: no text part in gemini response", ErrMalformedVerdict)
	}
	return b.String(), nil
}

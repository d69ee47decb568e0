package oracle

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
)

type fakeGenerator struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls int
	sent  []genai.Part
	ctx   context.Context
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	f.calls++
	f.sent = parts
	f.ctx = ctx
	return f.resp, f.err
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Parts: parts}}},
	}
}

func newTestClient(gen generator) *GeminiClient {
	return &GeminiClient{model: gen, modelName: "test-model", timeout: time.Second, logger: zap.NewNop()}
}

func TestConsultDeliversVerdict(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(genai.Text(validVerdict))}
	client := newTestClient(gen)

	res := client.Consult(context.Background(), Input{Description: "export bloccato", Category: "AMMINISTRAZIONE"})

	require.Equal(t, StatusVerdict, res.Status)
	assert.Equal(t, "Export fatture bloccato", res.Verdict.NormalizedTitle)
	assert.Equal(t, 1, gen.calls)
	require.Len(t, gen.sent, 1)
	assert.Contains(t, string(gen.sent[0].(genai.Text)), `"categoria":"AMMINISTRAZIONE"`)
	_, hasDeadline := gen.ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestConsultJoinsTextParts(t *testing.T) {
	half := len(validVerdict) / 2
	gen := &fakeGenerator{resp: textResponse(genai.Text(validVerdict[:half]), genai.Text(validVerdict[half:]))}

	res := newTestClient(gen).Consult(context.Background(), Input{})
	assert.Equal(t, StatusVerdict, res.Status)
}

func TestConsultUnavailable(t *testing.T) {
	tests := []struct {
		name string
		gen  *fakeGenerator
	}{
		{"transport error", &fakeGenerator{err: errors.New("connection reset")}},
		{"timeout", &fakeGenerator{err: context.DeadlineExceeded}},
		{"no candidates", &fakeGenerator{resp: &genai.GenerateContentResponse{}}},
		{"nil content", &fakeGenerator{resp: &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}}},
		{"no text", &fakeGenerator{resp: textResponse(genai.Blob{MIMEType: "image/png"})}},
		{"not json", &fakeGenerator{resp: textResponse(genai.Text("sure, create it"))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestClient(tt.gen).Consult(context.Background(), Input{})
			assert.Equal(t, StatusUnavailable, res.Status)
			assert.Error(t, res.Err)
			assert.Equal(t, 1, tt.gen.calls, "no retries")
		})
	}
}

func TestNewGeminiClientRequiresKey(t *testing.T) {
	_, err := NewGeminiClient(context.Background(), configWithKey(""), zap.NewNop())
	assert.Error(t, err)
}

func configWithKey(key string) config.GeminiConfig {
	return config.GeminiConfig{APIKey: key, Model: "gemini-1.5-flash", TimeoutSeconds: 45}
}

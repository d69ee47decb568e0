package board

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/domain"
)

func testTicket() domain.Ticket {
	return domain.Ticket{
		Title:        "CONSOLE: Login loop",
		Category:     domain.CategoryConsole,
		Priority:     domain.PriorityAlta,
		Description:  "The console keeps redirecting to the login page",
		Reporter:     domain.NewEmailAddress("anna@example.com"),
		Attachments:  []string{"https://drive.google.com/file/d/1", "https://docs.google.com/d/2"},
		LinkOfRecord: "https://crm.example/records/9",
	}
}

func testColumns() config.ColumnIDs {
	return config.ColumnIDs{
		Email:       "email",
		Category:    "status",
		Priority:    "priority",
		Description: "long_text",
		Attachments: "text",
		Link:        "long_text_link",
	}
}

func newTestClient(url string) *MondayClient {
	return NewMondayClient(config.MondayConfig{
		APIToken:       "tok",
		APIURL:         url,
		BoardID:        "123",
		GroupID:        "topics",
		TimeoutSeconds: 5,
		Columns:        testColumns(),
	}, nil, zap.NewNop())
}

func TestCreateItem(t *testing.T) {
	var got graphQLRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "tok", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		_, _ = w.Write([]byte(`{"data":{"create_item":{"id":"987","name":"CONSOLE: Login loop"}}}`))
	}))
	defer srv.Close()

	item, err := newTestClient(srv.URL).CreateItem(context.Background(), testTicket())
	require.NoError(t, err)
	assert.Equal(t, &CreatedItem{ID: "987", Name: "CONSOLE: Login loop"}, item)

	assert.Contains(t, got.Query, "create_item")
	assert.Equal(t, "123", got.Variables["boardId"])
	assert.Equal(t, "topics", got.Variables["groupId"])
	assert.Equal(t, "CONSOLE: Login loop", got.Variables["itemName"])

	var columns map[string]any
	require.NoError(t, json.Unmarshal([]byte(got.Variables["columnVals"].(string)), &columns))
	assert.Equal(t, map[string]any{"label": "CONSOLE"}, columns["status"])
	assert.Equal(t, map[string]any{"label": "ALTA"}, columns["priority"])
	assert.Equal(t, map[string]any{"email": "anna@example.com", "text": "anna@example.com"}, columns["email"])
	assert.Equal(t, map[string]any{"text": "The console keeps redirecting to the login page"}, columns["long_text"])
	assert.Equal(t, "https://drive.google.com/file/d/1\nhttps://docs.google.com/d/2", columns["text"])
	assert.Equal(t, map[string]any{"text": "https://crm.example/records/9"}, columns["long_text_link"])
}

func TestCreateItemErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantAPI bool
		want    string
	}{
		{"graphql errors", http.StatusOK, `{"errors":[{"message":"Column not found"},{"message":"bad label"}]}`, true, "Column not found; bad label"},
		{"error message", http.StatusOK, `{"error_code":"InvalidBoardIdException","error_message":"Board not found"}`, true, "InvalidBoardIdException: Board not found"},
		{"http status", http.StatusUnauthorized, `{"errors":[{"message":"Not Authenticated"}]}`, true, "status 401: Not Authenticated"},
		{"http status without body", http.StatusInternalServerError, `oops`, true, "status 500"},
		{"missing id", http.StatusOK, `{"data":{"create_item":null}}`, true, "no item id"},
		{"undecodable", http.StatusOK, `not json`, false, "decode monday response"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newTestClient(srv.URL).CreateItem(context.Background(), testTicket())
			require.Error(t, err)
			assert.Equal(t, tt.wantAPI, errors.Is(err, ErrAPI))
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestCreateItemTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := newTestClient(srv.URL).CreateItem(ctx, testTicket())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestColumnValuesSkipsUnconfiguredAndEmpty(t *testing.T) {
	ticket := testTicket()
	ticket.Attachments = nil
	ticket.LinkOfRecord = ""
	ticket.Reporter = domain.EmailAddress{}

	values := ColumnValues(ticket, config.ColumnIDs{Category: "status", Attachments: "text", Link: "link", Email: "email"})
	assert.Equal(t, map[string]any{"status": LabelValue{Label: "CONSOLE"}}, values)
}

func TestConfigured(t *testing.T) {
	assert.True(t, newTestClient("http://x").Configured())
	assert.False(t, NewMondayClient(config.MondayConfig{}, nil, zap.NewNop()).Configured())
}

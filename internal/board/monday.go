package board

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-router/internal/config"
	"github.com/spec-kit/ticket-router/internal/domain"
)

// ErrAPI marks an error reported by the board API itself rather than the transport.
var ErrAPI = errors.New("board API error")

const createItemMutation = `mutation ($boardId: ID!, $groupId: String!, $itemName: String!, $columnVals: JSON!) {
  create_item(board_id: $boardId, group_id: $groupId, item_name: $itemName, column_values: $columnVals) {
    id
    name
  }
}`

// CreatedItem identifies the board item created for a ticket.
type CreatedItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// APIError is one entry of a GraphQL error list.
type APIError struct {
	Message string `json:"message"`
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data *struct {
		CreateItem *CreatedItem `json:"create_item"`
	} `json:"data"`
	Errors       []APIError `json:"errors"`
	ErrorCode    string     `json:"error_code"`
	ErrorMessage string     `json:"error_message"`
}

// MondayClient creates items on one Monday.com board group.
type MondayClient struct {
	cfg        config.MondayConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewMondayClient constructs the client. httpClient may be nil.
func NewMondayClient(cfg config.MondayConfig, httpClient *http.Client, logger *zap.Logger) *MondayClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &MondayClient{cfg: cfg, httpClient: httpClient, logger: logger}
}

// Configured reports whether credentials and a board are set.
func (c *MondayClient) Configured() bool {
	return c.cfg.APIToken != "" && c.cfg.BoardID != ""
}

// CreateItem creates one item for ticket. It makes exactly one attempt.
func (c *MondayClient) CreateItem(ctx context.Context, ticket domain.Ticket) (*CreatedItem, error) {
	columns, err := json.Marshal(ColumnValues(ticket, c.cfg.Columns))
	if err != nil {
		return nil, fmt.Errorf("encode column values: %w", err)
	}

	body, err := json.Marshal(graphQLRequest{
		Query: createItemMutation,
		Variables: map[string]any{
			"boardId":    c.cfg.BoardID,
			"groupId":    c.cfg.GroupID,
			"itemName":   ticket.Title,
			"columnVals": string(columns),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	if timeout := c.cfg.Timeout(); timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("monday request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read monday response: %w", err)
	}
	c.logger.Debug("monday create_item",
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	var parsed graphQLResponse
	decodeErr := json.Unmarshal(raw, &parsed)

	if resp.StatusCode >= http.StatusBadRequest {
		if decodeErr == nil {
			if msg := parsed.message(); msg != "" {
				return nil, fmt.Errorf("%w: status %d: %s", ErrAPI, resp.StatusCode, msg)
			}
		}
		return nil, fmt.Errorf("%w: status %d", ErrAPI, resp.StatusCode)
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("decode monday response: %w", decodeErr)
	}
	if msg := parsed.message(); msg != "" {
		return nil, fmt.Errorf("%w: %s", ErrAPI, msg)
	}
	if parsed.Data == nil || parsed.Data.CreateItem == nil || parsed.Data.CreateItem.ID == "" {
		return nil, fmt.Errorf("%w: response carried no item id", ErrAPI)
	}
	return parsed.Data.CreateItem, nil
}

func (r graphQLResponse) message() string {
	if len(r.Errors) > 0 {
		msgs := make([]string, 0, len(r.Errors))
		for _, e := range r.Errors {
			msgs = append(msgs, e.Message)
		}
		return strings.Join(msgs, "; ")
	}
	if r.ErrorMessage != "" {
		if r.ErrorCode != "" {
			return r.ErrorCode + ": " + r.ErrorMessage
		}
		return r.ErrorMessage
	}
	return ""
}

package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"wa-coach-bot/internal/domain"
	apperrors "wa-coach-bot/pkg/errors"
)

const requestTimeout = 30 * time.Second

// Client talks to the chat gateway's outbound REST API. The gateway owns
// the actual device session; this client only pushes messages at it.
type Client struct {
	baseURL string
	token   string
	httpc   *http.Client
	logger  domain.Logger
}

// NewClient creates a gateway client from the application configuration.
func NewClient(config domain.Config, logger domain.Logger) *Client {
	return &Client{
		baseURL: config.GetGatewayURL(),
		token:   config.GetGatewayToken(),
		httpc:   &http.Client{Timeout: requestTimeout},
		logger:  logger,
	}
}

type sendTextRequest struct {
	To   string `json:"to"`
	Body string `json:"body"`
}

type typingRequest struct {
	To string `json:"to"`
}

// SendText delivers one text message to a chat address.
func (c *Client) SendText(ctx context.Context, to, body string) error {
	return c.post(ctx, "/api/messages", sendTextRequest{To: to, Body: body})
}

// SendTyping shows the typing indicator in the recipient's chat.
func (c *Client) SendTyping(ctx context.Context, to string) error {
	return c.post(ctx, "/api/typing", typingRequest{To: to})
}

func (c *Client) post(ctx context.Context, path string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return apperrors.NewInternalError("failed to encode gateway request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return apperrors.NewInternalError("failed to build gateway request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return apperrors.NewTransportError("gateway request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperrors.NewTransportError(
			fmt.Sprintf("gateway returned status %d: %s", resp.StatusCode, snippet), nil)
	}
	return nil
}

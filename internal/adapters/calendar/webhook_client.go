package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mailtriage/mailtriage/internal/core"
	"go.uber.org/zap"
)

// WebhookClient POSTs event requests to an external calendar bridge. The
// bridge owns authentication against the real calendar provider and answers
// with a link to the created event.
type WebhookClient struct {
	url        string
	httpClient *http.Client
	logger     *zap.Logger
}

type webhookEvent struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Timezone    string `json:"timezone"`
}

type webhookResponse struct {
	Link string `json:"link"`
}

// NewWebhookClient creates a webhook calendar client
func NewWebhookClient(url string, logger *zap.Logger) *WebhookClient {
	return &WebhookClient{
		url:        url,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// CreateEvent posts the event to the webhook and returns the event link
func (c *WebhookClient) CreateEvent(ctx context.Context, req *core.EventRequest) (string, error) {
	payload, err := json.Marshal(webhookEvent{
		Title:       req.Title,
		Description: req.Description,
		Start:       req.Start.Format(time.RFC3339),
		End:         req.End.Format(time.RFC3339),
		Timezone:    req.Timezone,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal event: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build webhook request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}

	var wr webhookResponse
	if err := json.NewDecoder(resp.Body).Decode(&wr); err != nil {
		// A bridge that answers with an empty body is still a success
		c.logger.Debug("Webhook response had no parseable body", zap.Error(err))
		return c.url, nil
	}
	if wr.Link == "" {
		return c.url, nil
	}
	return wr.Link, nil
}

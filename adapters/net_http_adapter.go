package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Tap30/beacon-go/payload"
)

// BatchBody is the JSON body posted to the collector.
type BatchBody struct {
	Batch  []Message    `json:"batch"`
	SentAt payload.Time `json:"sentAt"`
}

// NetHTTPAdapter is the standard transport implementation using net/http package.
type NetHTTPAdapter struct {
	client *http.Client
}

// Ensure NetHTTPAdapter implements TransportAdapter interface
var _ TransportAdapter = (*NetHTTPAdapter)(nil)

// NewNetHTTPAdapter creates a new NetHTTPAdapter instance.
// A zero timeout leaves requests bounded only by their context.
func NewNetHTTPAdapter(timeout time.Duration) *NetHTTPAdapter {
	return &NetHTTPAdapter{
		client: &http.Client{Timeout: timeout},
	}
}

// Send posts the batch to the endpoint with the given headers. The body's
// sentAt is taken from the first message, which the dispatcher stamps
// together with the rest of the batch.
func (h *NetHTTPAdapter) Send(ctx context.Context, endpoint string, messages []Message, headers map[string]string) (*Response, error) {
	body := BatchBody{Batch: messages, SentAt: payload.Now()}
	if len(messages) > 0 {
		if sent, ok := messages[0].SentAt(); ok {
			body.SentAt = sent
		}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal messages: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	return &Response{
		Status: resp.StatusCode,
		OK:     resp.StatusCode >= 200 && resp.StatusCode < 300,
	}, nil
}

package formsubmit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/escalopa/quran-reader/internal/domain"
)

const subject = "Saran & Masukan"

type Client struct {
	endpoint   string
	httpClient *http.Client
}

var _ domain.FeedbackChannel = (*Client)(nil)

// NewClient creates a relay client posting to {baseURL}/ajax/{recipient}
func NewClient(baseURL, recipient string, timeout time.Duration) *Client {
	return &Client{
		endpoint: baseURL + "/ajax/" + url.PathEscape(recipient),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type submission struct {
	Name      string `json:"name,omitempty"`
	Email     string `json:"email,omitempty"`
	Message   string `json:"message"`
	Subject   string `json:"_subject"`
	Template  string `json:"_template"`
	RequestID string `json:"_reference"`
}

type relayResponse struct {
	Success any    `json:"success"`
	Message string `json:"message"`
}

// Submit forwards the feedback. Any non-2xx response or a relay-reported failure is an error.
func (c *Client) Submit(ctx context.Context, fb domain.Feedback) error {
	body, err := json.Marshal(submission{
		Name:      fb.Name,
		Email:     fb.Email,
		Message:   fb.Message,
		Subject:   subject,
		Template:  "table",
		RequestID: fb.ID,
	})
	if err != nil {
		return fmt.Errorf("encode feedback: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if fb.ID != "" {
		req.Header.Set("X-Request-ID", fb.ID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(raw))
	}

	var result relayResponse
	if err := json.Unmarshal(raw, &result); err == nil && isFalse(result.Success) {
		return fmt.Errorf("relay rejected feedback: %s", result.Message)
	}
	return nil
}

// isFalse reports an explicit false, which the relay sends as a bool or a string
func isFalse(v any) bool {
	switch s := v.(type) {
	case bool:
		return !s
	case string:
		return s == "false"
	}
	return false
}

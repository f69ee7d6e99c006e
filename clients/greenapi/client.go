package greenapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultBaseURL is the public Green API endpoint
const DefaultBaseURL = "https://api.green-api.com"

// Client calls the Green API WhatsApp gateway. Credentials are passed per
// request because callers may override the process-wide defaults.
type Client struct {
	baseURL string
	client  *http.Client
}

// NewClient creates a Green API client. An empty baseURL selects the
// public endpoint.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetTimeout overrides the request timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.client.Timeout = timeout
}

// APIError is a non-success gateway response, carrying the status code and
// raw body for diagnostics.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("green api request failed: %d - %s", e.Status, e.Body)
}

type sendMessageRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

// SendMessageResponse is the parsed success payload
type SendMessageResponse struct {
	IDMessage string `json:"idMessage"`
}

// SendMessage posts one message to a chat. It returns the parsed response
// plus the raw body, which callers persist for audit.
func (c *Client) SendMessage(ctx context.Context, idInstance, apiToken, chatID, message string) (*SendMessageResponse, json.RawMessage, error) {
	payload, err := json.Marshal(sendMessageRequest{
		ChatID:  chatID,
		Message: message,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal send message request: %w", err)
	}

	url := fmt.Sprintf("%s/waInstance%s/sendMessage/%s", c.baseURL, idInstance, apiToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to call green api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read green api response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, &APIError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed SendMessageResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, nil, fmt.Errorf("failed to parse green api response: %w", err)
	}

	return &parsed, json.RawMessage(body), nil
}

package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/marcelsud/approval-bridge/approval"
)

// Client posts decisions to the workflow engine callback URL
// Both the URL and the bearer token are secrets
type Client struct {
	Secrets    approval.SecretSource
	HTTPClient *http.Client
}

// NewClient creates a workflow callback client
func NewClient(secrets approval.SecretSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		Secrets:    secrets,
		HTTPClient: httpClient,
	}
}

// StatusError reports a callback answered with something other than 200
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("workflow callback returned status %d: %s", e.StatusCode, e.Body)
}

// Notify sends payload as JSON and expects exactly 200
func (c *Client) Notify(ctx context.Context, payload map[string]any) error {
	target, err := c.Secrets.Get(ctx, approval.SecretWorkflowCallbackURL)
	if err != nil {
		return fmt.Errorf("resolving callback url: %w", err)
	}
	token, err := c.Secrets.Get(ctx, approval.SecretWorkflowCallbackToken)
	if err != nil {
		return fmt.Errorf("resolving callback token: %w", err)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling callback payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating callback request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling workflow callback: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

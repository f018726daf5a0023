package conformance

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Client talks to a sandboxed conformance-runner service over HTTP. The
// runner renders the fragment in an off-document container, evaluates the
// selected rule tags and discards the container.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a conformance client for the given runner endpoint
func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{},
	}
}

type evaluateRequest struct {
	Source string   `json:"source"`
	Tags   []string `json:"tags"`
}

// Evaluate posts the fragment and the level's rule-tag filter to the runner
func (c *Client) Evaluate(ctx context.Context, fragment string, level Level) (*Report, error) {
	if c.url == "" {
		return nil, errors.New("no conformance endpoint configured")
	}

	payload, err := json.Marshal(evaluateRequest{
		Source: fragment,
		Tags:   level.Tags(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode evaluation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("evaluation failed: %d - %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var report Report
	if err := json.Unmarshal(body, &report); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation report: %w", err)
	}

	return &report, nil
}

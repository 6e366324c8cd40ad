package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every backend call. A hung request must fail instead
// of leaving a submission in flight forever.
const DefaultTimeout = 15 * time.Second

// Client talks to the store backend's REST API. It performs no caching and no
// retries: every read is an authoritative re-fetch, and a failed call is
// surfaced to the user for explicit re-initiation.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a backend client for the given base URL. A non-positive
// timeout falls back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// do issues one request and decodes the JSON response body into out. The
// body is decoded regardless of HTTP status, because the backend reports
// business failures as JSON with a success flag. Transport failures map to
// NetworkError, undecodable responses to ProtocolError.
func (c *Client) do(ctx context.Context, method, path string, payload, out interface{}) error {
	op := method + " " + path

	var reqBody io.Reader
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return &ProtocolError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ProtocolError{Op: op, Err: fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)}
	}
	return nil
}

// statusResponse is the backend's generic mutation acknowledgement.
type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

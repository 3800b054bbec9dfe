// Package signedurl moves bytes in and out of storage through pre-signed URLs.
// Bodies are streamed in both directions; nothing is buffered whole in memory.
package signedurl

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxErrorBody caps how much of a failed response is quoted in the error.
const maxErrorBody = 512

type Client struct {
	client *http.Client
}

// New creates a Client. timeout bounds one whole transfer; zero means no limit.
func New(timeout time.Duration) *Client {
	return &Client{client: &http.Client{Timeout: timeout}}
}

// NewWithHTTPClient is used by tests and callers that share a transport.
func NewWithHTTPClient(c *http.Client) *Client {
	return &Client{client: c}
}

// Download issues a GET and returns the body for the caller to stream and close.
func (c *Client) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download request failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, statusError("download", resp)
	}

	return resp.Body, nil
}

// Upload PUTs size bytes from r. Pre-signed PUT URLs reject chunked bodies,
// so the length is always sent.
func (c *Client) Upload(ctx context.Context, url string, r io.Reader, size int64, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, r)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = size
	if size == 0 {
		req.Body = http.NoBody
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return statusError("upload", resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func statusError(op string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return fmt.Errorf("%s returned unexpected status %d", op, resp.StatusCode)
	}
	return fmt.Errorf("%s returned unexpected status %d: %s", op, resp.StatusCode, msg)
}

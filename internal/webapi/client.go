// ABOUTME: Shared JSON-over-HTTP client for external collaborator APIs
// ABOUTME: Applies a request timeout and bounded retries with backoff
package webapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pmcavoy/aide/internal/util"
)

// Client performs JSON GET requests with retry. Collaborators own their
// retry policy per the core's contract, so the client is configured per
// collaborator rather than globally.
type Client struct {
	httpClient  *http.Client
	maxAttempts int
	retryDelay  time.Duration
}

// New creates a client with the given request timeout and retry policy.
func New(timeout time.Duration, maxAttempts int, retryDelay time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &Client{
		httpClient:  &http.Client{Timeout: timeout},
		maxAttempts: maxAttempts,
		retryDelay:  retryDelay,
	}
}

// GetJSON fetches base?params and decodes the JSON body into out.
// Transport failures and 5xx responses are retried; 4xx responses are
// returned immediately since retrying cannot help.
func (c *Client) GetJSON(ctx context.Context, base string, params url.Values, out any) error {
	reqURL := base
	if len(params) > 0 {
		reqURL = base + "?" + params.Encode()
	}

	return util.Retry(ctx, c.maxAttempts, c.retryDelay, func() error {
		retryable, err := c.getOnce(ctx, reqURL, out)
		if err != nil && !retryable {
			return util.Permanent(err)
		}
		return err
	})
}

// getOnce performs a single request. The bool reports whether the failure
// is worth retrying.
func (c *Client) getOnce(ctx context.Context, reqURL string, out any) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 500 {
		return true, fmt.Errorf("server error %d: %s", resp.StatusCode, truncateBody(body))
	}
	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("request rejected with %d: %s", resp.StatusCode, truncateBody(body))
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return false, fmt.Errorf("decoding response: %w", err)
		}
	}
	return false, nil
}

func truncateBody(body []byte) string {
	const maxLen = 200
	s := string(body)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}

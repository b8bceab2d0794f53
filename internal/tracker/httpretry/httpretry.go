// Package httpretry wraps an *http.Client with exponential backoff for the
// tracker adapters, grounded on the retry pattern internal/storage/dolt uses
// for transient Dolt server errors, generalized here to transient HTTP
// tracker-API failures (429, 5xx, connection resets).
package httpretry

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// MaxElapsed bounds the total time a single request may spend retrying.
const MaxElapsed = 30 * time.Second

// Client issues HTTP requests with exponential backoff on transient
// failures.
type Client struct {
	HTTP *http.Client
}

// New returns a Client with the given timeout applied to each individual
// attempt.
func New(timeout time.Duration) *Client {
	return &Client{HTTP: &http.Client{Timeout: timeout}}
}

func newBackOff() backoff.BackOff {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = MaxElapsed
	return bo
}

// isRetryableStatus reports whether a response status code indicates a
// transient failure worth retrying (rate limiting, server errors).
func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "connection reset") ||
		strings.Contains(s, "connection refused") ||
		strings.Contains(s, "EOF")
}

// Do executes req, retrying on transient network errors and 429/5xx
// responses with exponential backoff, and returns the response body.
// Non-2xx responses that aren't retried are returned as an error carrying
// the status code and body.
func (c *Client) Do(ctx context.Context, req *http.Request) ([]byte, int, error) {
	var (
		body       []byte
		statusCode int
	)

	bo := newBackOff()
	err := backoff.Retry(func() error {
		attempt := req.Clone(ctx)
		if req.GetBody != nil {
			rc, err := req.GetBody()
			if err != nil {
				return backoff.Permanent(fmt.Errorf("rewind request body: %w", err))
			}
			attempt.Body = rc
		}
		resp, err := c.HTTP.Do(attempt)
		if err != nil {
			if isRetryableError(err) {
				return err
			}
			return backoff.Permanent(err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return backoff.Permanent(fmt.Errorf("read response body: %w", readErr))
		}

		statusCode = resp.StatusCode
		body = data

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			apiErr := fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(data))
			if isRetryableStatus(resp.StatusCode) {
				return apiErr
			}
			return backoff.Permanent(apiErr)
		}
		return nil
	}, backoff.WithContext(bo, ctx))

	return body, statusCode, err
}

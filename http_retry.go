package main

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// newBackoffPolicy creates a configured exponential backoff policy for retrying transient errors
func newBackoffPolicy() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = BackoffInitialInterval
	b.MaxInterval = BackoffMaxInterval
	b.MaxElapsedTime = BackoffMaxElapsedTime
	b.Multiplier = BackoffMultiplier
	b.RandomizationFactor = BackoffRandomizationFactor
	return b
}

// shouldRetryStatus determines if a response status code should trigger a retry
func shouldRetryStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusRequestTimeout ||
		(statusCode >= 500 && statusCode < 600)
}

// isRetryableError determines if a transport-level error should trigger a retry
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "broken pipe")
}

// cloneRequest creates a copy of an HTTP request, including its body
func cloneRequest(req *http.Request) *http.Request {
	r := req.Clone(req.Context())
	if req.Body != nil && req.Body != http.NoBody {
		body, _ := io.ReadAll(req.Body)
		req.Body.Close() //nolint:errcheck // best effort close
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		req.Body = io.NopCloser(strings.NewReader(string(body)))
	}
	return r
}

// HTTPClient interface for flexibility and testing
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// RetryableClient wraps HTTPClient with retry logic for transient failures.
// Non-retryable responses (404, 401, ...) are returned to the caller untouched.
type RetryableClient struct {
	client     HTTPClient
	maxRetries int
}

// NewRetryableClient creates a new RetryableClient
func NewRetryableClient(baseClient *http.Client, maxRetries int) *RetryableClient {
	return &RetryableClient{
		client:     baseClient,
		maxRetries: maxRetries,
	}
}

// Do executes the HTTP request, retrying on transient errors and retryable
// status codes with exponential backoff.
func (r *RetryableClient) Do(req *http.Request) (*http.Response, error) {
	b := newBackoffPolicy()
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			wait := b.NextBackOff()
			if wait == backoff.Stop {
				break
			}
			LogWarn(req.Context(), "[HTTP RETRY] Attempt %d/%d for %s (waiting %v)",
				attempt, r.maxRetries, req.URL, wait)

			select {
			case <-time.After(wait):
			case <-req.Context().Done():
				return nil, req.Context().Err()
			}
		}

		resp, err := r.client.Do(cloneRequest(req))
		if err != nil {
			if !isRetryableError(err) {
				return nil, err
			}
			lastErr = err
			continue
		}

		if !shouldRetryStatus(resp.StatusCode) {
			return resp, nil
		}

		resp.Body.Close() //nolint:errcheck // best effort close
		lastErr = fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("max retries (%d) exhausted", r.maxRetries)
}

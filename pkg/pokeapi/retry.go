package pokeapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// RetryClient interface for retry operations
type RetryClient interface {
	DoWithRetry(ctx context.Context, req *http.Request, maxRetries int) (*http.Response, error)
}

// DefaultRetryClient implements retry logic with exponential backoff.
// PokeAPI is rate-sensitive, so 429 and 5xx responses are retried with
// backoff rather than surfaced immediately.
type DefaultRetryClient struct {
	httpClient *http.Client
}

// NewDefaultRetryClient creates a new default retry client
func NewDefaultRetryClient(httpClient *http.Client) *DefaultRetryClient {
	return &DefaultRetryClient{
		httpClient: httpClient,
	}
}

// DoWithRetry makes an HTTP request with retry logic and proper error handling
func (r *DefaultRetryClient) DoWithRetry(ctx context.Context, req *http.Request, maxRetries int) (*http.Response, error) {
	var resp *http.Response
	var err error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Clone request for retry attempts
		reqClone := req.Clone(ctx)

		resp, err = r.httpClient.Do(reqClone)
		if err != nil {
			if attempt == maxRetries {
				return nil, fmt.Errorf("request failed after %d attempts: %w", maxRetries+1, err)
			}

			if err := r.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		// Retry on server errors and rate limiting
		if resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests {
			resp.Body.Close() // Close body before retry

			if attempt == maxRetries {
				return nil, fmt.Errorf("request failed with status %d after %d attempts", resp.StatusCode, maxRetries+1)
			}

			slog.WarnContext(ctx, "PokeAPI request will be retried",
				"url", req.URL.Path,
				"status_code", resp.StatusCode,
				"attempt", attempt+1)

			if err := r.backoff(ctx, attempt); err != nil {
				return nil, err
			}
			continue
		}

		// Success or non-retryable error
		break
	}

	return resp, nil
}

func (r *DefaultRetryClient) backoff(ctx context.Context, attempt int) error {
	backoffDuration := time.Duration(1<<uint(attempt)) * time.Second
	if backoffDuration > 10*time.Second {
		backoffDuration = 10 * time.Second
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(backoffDuration):
		return nil
	}
}

package providers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// BackoffConfig controls exponential backoff for upstream calls. MaxRetries
// of zero disables retries entirely.
type BackoffConfig struct {
	MaxRetries      int
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

var defaultBackoff = BackoffConfig{
	MaxRetries:      3,
	InitialInterval: 500 * time.Millisecond,
	MaxInterval:     5 * time.Second,
}

var (
	errRateLimited = errors.New("rate limited")
	errServerError = errors.New("server error")
	errUnexpected  = errors.New("unexpected status code")
	errCircuitOpen = errors.New("circuit breaker open")
)

// resilientClient wraps an HTTP client with exponential backoff and a
// circuit breaker. It is shared by the geocoding and history boundary
// clients; the inference client manages its own round-trip policy.
type resilientClient struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker
	backoff BackoffConfig
}

func newResilientClient(client *http.Client, name string, backoff BackoffConfig) *resilientClient {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})
	return &resilientClient{client: client, breaker: cb, backoff: backoff}
}

// get issues a GET request, retrying transport errors, 429s and 5xx with
// exponential backoff. Other non-2xx statuses fail immediately. The caller
// owns the response body on success.
func (rc *resilientClient) get(ctx context.Context, rawURL string) (*http.Response, error) {
	var attempt int

	for {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return nil, err
		}

		result, err := rc.breaker.Execute(func() (interface{}, error) {
			resp, execErr := rc.client.Do(req)
			if execErr != nil {
				return nil, execErr
			}

			switch {
			case resp.StatusCode == http.StatusTooManyRequests:
				resp.Body.Close()
				return nil, errRateLimited
			case resp.StatusCode >= 500:
				resp.Body.Close()
				return nil, errServerError
			case resp.StatusCode < 200 || resp.StatusCode >= 300:
				resp.Body.Close()
				return nil, fmt.Errorf("%w: %d", errUnexpected, resp.StatusCode)
			}
			return resp, nil
		})
		if err == nil {
			return result.(*http.Response), nil
		}

		// An open circuit propagates immediately; so do client errors.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %v", errCircuitOpen, err)
		}
		if errors.Is(err, errUnexpected) {
			return nil, err
		}

		if attempt >= rc.backoff.MaxRetries {
			return nil, err
		}

		delay := rc.backoff.InitialInterval * time.Duration(math.Pow(2, float64(attempt)))
		if rc.backoff.MaxInterval > 0 && delay > rc.backoff.MaxInterval {
			delay = rc.backoff.MaxInterval
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		attempt++
	}
}

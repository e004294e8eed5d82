package infra

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// Backoff retries a function with exponential delays. Adapters never retry
// on their own; reliability is added at the pipeline-invocation level.
type Backoff struct {
	Attempts int
	Initial  time.Duration
	Max      time.Duration
	Factor   float64
}

func DefaultBackoff(attempts int) Backoff {
	return Backoff{
		Attempts: attempts,
		Initial:  500 * time.Millisecond,
		Max:      10 * time.Second,
		Factor:   2.0,
	}
}

// Retry runs fn up to b.Attempts times. Context cancellation is never
// retried. The last error is returned when all attempts fail.
func (b Backoff) Retry(ctx context.Context, fn func() error) error {
	if b.Attempts < 1 {
		b.Attempts = 1
	}

	var lastErr error
	delay := b.Initial

	for attempt := 1; attempt <= b.Attempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if attempt == b.Attempts {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}

		delay = time.Duration(float64(delay) * b.Factor)
		if delay > b.Max {
			delay = b.Max
		}
	}

	return lastErr
}

// IsRetryableHTTPStatus returns true if the HTTP status code is worth
// retrying at the pipeline level.
func IsRetryableHTTPStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout ||
		statusCode >= 500
}

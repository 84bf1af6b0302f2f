package http

import (
	"context"
	"errors"
	"time"
)

// MaxRetryDelay caps a single backoff delay.
const MaxRetryDelay = 30 * time.Second

// RetryDelays returns n backoff delays doubling from one second and capped
// at MaxRetryDelay: 1s, 2s, 4s, ... 30s, 30s.
func RetryDelays(n int) []time.Duration {
	delays := make([]time.Duration, 0, n)
	d := time.Second
	for i := 0; i < n; i++ {
		delays = append(delays, d)
		d = min(d*2, MaxRetryDelay)
	}
	return delays
}

// transientError marks a failure worth retrying: transport errors and
// server-side statuses.
type transientError struct {
	err error
}

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

// withRetry calls fn until it succeeds, fails permanently, or the delays
// are exhausted (1 initial attempt + len(delays) retries).
func withRetry(ctx context.Context, delays []time.Duration, fn func() ([]byte, error)) ([]byte, error) {
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		body, err := fn()
		if err == nil {
			return body, nil
		}
		lastErr = err

		var transient *transientError
		if !errors.As(err, &transient) || attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	var transient *transientError
	if errors.As(lastErr, &transient) {
		return nil, transient.err
	}
	return nil, lastErr
}

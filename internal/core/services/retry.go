package services

import (
	"context"
	"time"

	"github.com/zaibi117/readme-maker/internal/logger"
)

// RetryConfig configures exponential backoff retry behaviour.
type RetryConfig struct {
	// MaxRetries is the total number of attempts.
	MaxRetries int

	// BaseDelay is the wait after the first failed attempt. Attempt n waits
	// BaseDelay * 2^(n-1).
	BaseDelay time.Duration
}

// retryWithBackoff calls fn until it succeeds, attempts run out or ctx ends.
// The last error is returned when attempts run out.
func retryWithBackoff[T any](ctx context.Context, cfg RetryConfig, label string, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	attempts := max(1, cfg.MaxRetries)
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return zero, err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		// Cancellation is not retried.
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		if attempt == attempts {
			break
		}

		wait := cfg.BaseDelay * time.Duration(1<<(attempt-1))
		logger.Warn("%s attempt %d/%d failed: %v (retrying in %s)", label, attempt, attempts, err, wait)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, ctx.Err()
		case <-timer.C:
		}
	}

	return zero, lastErr
}

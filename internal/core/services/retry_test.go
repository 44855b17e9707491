package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryWithBackoff_SucceedsAfterFailures(t *testing.T) {
	calls := 0
	got, err := retryWithBackoff(context.Background(), RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond}, "test",
		func(context.Context) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("flaky")
			}
			return "ok", nil
		})

	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_ReturnsLastError(t *testing.T) {
	calls := 0
	_, err := retryWithBackoff(context.Background(), RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond}, "test",
		func(context.Context) (int, error) {
			calls++
			return 0, errors.New("attempt failed")
		})

	assert.EqualError(t, err, "attempt failed")
	assert.Equal(t, 2, calls)
}

func TestRetryWithBackoff_ExponentialDelay(t *testing.T) {
	start := time.Now()
	_, _ = retryWithBackoff(context.Background(), RetryConfig{MaxRetries: 3, BaseDelay: 10 * time.Millisecond}, "test",
		func(context.Context) (int, error) { return 0, errors.New("x") })

	// 10ms + 20ms between three attempts.
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestRetryWithBackoff_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, err := retryWithBackoff(ctx, RetryConfig{MaxRetries: 5, BaseDelay: time.Hour}, "test",
		func(context.Context) (int, error) {
			calls++
			cancel()
			return 0, errors.New("boom")
		})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryWithBackoff_ZeroRetriesStillAttemptsOnce(t *testing.T) {
	calls := 0
	_, _ = retryWithBackoff(context.Background(), RetryConfig{}, "test",
		func(context.Context) (int, error) {
			calls++
			return 0, errors.New("x")
		})
	assert.Equal(t, 1, calls)
}

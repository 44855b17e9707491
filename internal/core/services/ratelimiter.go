package services

import (
	"context"
	"sync"
	"time"

	"github.com/zaibi117/readme-maker/internal/core/domain"
	"github.com/zaibi117/readme-maker/internal/logger"
)

// Default limiter allowance.
const (
	DefaultMaxRequests = 15
	DefaultWindow      = time.Minute
)

// RateLimitResult is the outcome of a CheckLimit call.
type RateLimitResult struct {
	Allowed   bool
	Remaining int
	ResetTime time.Time
}

// RateLimiter is a fixed-window request counter keyed by caller-chosen
// strings. A window opens on the first request after the previous one
// ended, so a burst straddling a boundary may admit up to twice the
// allowance.
type RateLimiter struct {
	maxRequests int
	window      time.Duration
	now         func() time.Time

	mu      sync.Mutex
	entries map[string]*domain.RateLimitEntry
}

// RateLimiterOption configures the limiter.
type RateLimiterOption func(*RateLimiter)

// WithClock replaces time.Now. Used by tests.
func WithClock(now func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRateLimiter creates a limiter admitting maxRequests per window.
// Non-positive values fall back to the defaults.
func NewRateLimiter(maxRequests int, window time.Duration, opts ...RateLimiterOption) *RateLimiter {
	if maxRequests <= 0 {
		maxRequests = DefaultMaxRequests
	}
	if window <= 0 {
		window = DefaultWindow
	}

	r := &RateLimiter{
		maxRequests: maxRequests,
		window:      window,
		now:         time.Now,
		entries:     make(map[string]*domain.RateLimitEntry),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// CheckLimit records a request for key and reports whether it is admitted.
func (r *RateLimiter) CheckLimit(key string) RateLimitResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	entry, ok := r.entries[key]

	if !ok || !now.Before(entry.ResetTime) {
		entry = &domain.RateLimitEntry{Count: 1, ResetTime: now.Add(r.window)}
		r.entries[key] = entry
		return RateLimitResult{Allowed: true, Remaining: r.maxRequests - 1, ResetTime: entry.ResetTime}
	}

	if entry.Count < r.maxRequests {
		entry.Count++
		return RateLimitResult{Allowed: true, Remaining: r.maxRequests - entry.Count, ResetTime: entry.ResetTime}
	}

	return RateLimitResult{Allowed: false, Remaining: 0, ResetTime: entry.ResetTime}
}

// WaitForReset blocks until the current window for key ends or ctx is done.
// It returns immediately when key has no open window.
func (r *RateLimiter) WaitForReset(ctx context.Context, key string) error {
	wait := r.RemainingTime(key)
	if wait <= 0 {
		return nil
	}

	logger.Warn("Rate limit reached for %s, waiting %s", key, wait.Round(time.Second))

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Acquire records a request for key, waiting out full windows until one
// admits it. The admitted request is counted in the window it runs in.
func (r *RateLimiter) Acquire(ctx context.Context, key string) error {
	for {
		if r.CheckLimit(key).Allowed {
			return nil
		}
		if err := r.WaitForReset(ctx, key); err != nil {
			return err
		}
	}
}

// RemainingRequests returns how many requests key may still make in the
// current window. Expired or missing windows report the full allowance.
func (r *RateLimiter) RemainingRequests(key string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok || !r.now().Before(entry.ResetTime) {
		return r.maxRequests
	}
	return max(0, r.maxRequests-entry.Count)
}

// RemainingTime returns the time until the current window for key ends.
func (r *RateLimiter) RemainingTime(key string) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return 0
	}
	return max(0, entry.ResetTime.Sub(r.now()))
}

// MaxRequests returns the per-window allowance.
func (r *RateLimiter) MaxRequests() int {
	return r.maxRequests
}

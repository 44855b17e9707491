package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/zaibi117/readme-maker/internal/logger"
)

const (
	// GitHubRateLimit is the authenticated hourly quota, assumed until a response says otherwise.
	GitHubRateLimit = 5000

	// ProactiveRate keeps a long run under the authenticated quota (about 4320/hr).
	ProactiveRate = 1.2

	// ProactiveBurst lets one download batch through without throttling.
	ProactiveBurst = 10

	// MinBuffer is the number of requests held back for other tools sharing the token.
	MinBuffer = 100
)

// Quota headers sent on every API response.
const (
	HeaderRateLimit     = "X-RateLimit-Limit"
	HeaderRateRemaining = "X-RateLimit-Remaining"
	HeaderRateReset     = "X-RateLimit-Reset"
	HeaderRetryAfter    = "Retry-After"
)

// quota is the last quota state reported by GitHub.
type quota struct {
	limit     int
	remaining int
	reset     time.Time
}

// reserve is how many requests stay untouched. Unauthenticated quotas
// (60/hr) are smaller than MinBuffer, so those only stop at zero.
func (q quota) reserve(minBuffer int) int {
	if q.limit < minBuffer {
		return 1
	}
	return minBuffer
}

// RateLimiter throttles GitHub API calls. A token bucket spaces requests out
// and the quota headers of each response pause calls once the quota runs low.
type RateLimiter struct {
	bucket    *rate.Limiter
	minBuffer int

	mu    sync.Mutex
	quota quota
}

// NewRateLimiter creates a rate limiter with the default proactive throttle.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithRate(rate.Limit(ProactiveRate), ProactiveBurst)
}

// NewRateLimiterWithRate creates a rate limiter with a custom throttle.
// rate.Inf disables proactive throttling.
func NewRateLimiterWithRate(limit rate.Limit, burst int) *RateLimiter {
	return &RateLimiter{
		bucket:    rate.NewLimiter(limit, burst),
		minBuffer: MinBuffer,
		quota:     quota{limit: GitHubRateLimit, remaining: GitHubRateLimit},
	}
}

// Wait blocks until the next request may be sent or ctx is done.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	q := r.snapshot()
	if q.remaining >= q.reserve(r.minBuffer) || !time.Now().Before(q.reset) {
		return nil
	}

	pause := time.Until(q.reset)
	logger.Warn("GitHub API quota low (%d of %d left), waiting %s", q.remaining, q.limit, pause.Round(time.Second))
	timer := time.NewTimer(pause)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// UpdateFromResponse records the quota headers of resp. Missing or
// malformed headers leave the previous value in place.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v, ok := intHeader(resp, HeaderRateRemaining); ok {
		r.quota.remaining = v
	}
	if v, ok := intHeader(resp, HeaderRateLimit); ok {
		r.quota.limit = v
	}
	if v, ok := intHeader(resp, HeaderRateReset); ok {
		r.quota.reset = time.Unix(int64(v), 0)
	}
}

// CheckRateLimit records the quota of resp and returns a *RateLimitError
// when the response is a 429, or a 403 sent with an exhausted quota.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil {
		return nil
	}
	r.UpdateFromResponse(resp)

	q := r.snapshot()
	limited := resp.StatusCode == http.StatusTooManyRequests ||
		(resp.StatusCode == http.StatusForbidden && q.remaining == 0)
	if !limited {
		return nil
	}

	resetAt := q.reset
	if secs, ok := intHeader(resp, HeaderRetryAfter); ok {
		resetAt = time.Now().Add(time.Duration(secs) * time.Second)
	}
	return &RateLimitError{ResetAt: resetAt, Remaining: q.remaining, Limit: q.limit}
}

// Remaining returns the requests left in the current window.
func (r *RateLimiter) Remaining() int {
	return r.snapshot().remaining
}

// Limit returns the quota size.
func (r *RateLimiter) Limit() int {
	return r.snapshot().limit
}

// ResetTime returns when the current window ends.
func (r *RateLimiter) ResetTime() time.Time {
	return r.snapshot().reset
}

func (r *RateLimiter) snapshot() quota {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.quota
}

func intHeader(resp *http.Response, name string) (int, bool) {
	raw := resp.Header.Get(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

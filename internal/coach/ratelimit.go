package coach

import (
	"context"
	"sync"
	"time"
)

// RateLimiter keeps requests under a per-minute budget
type RateLimiter struct {
	mu sync.Mutex

	limit    int
	usage    int
	resetsAt time.Time
	window   time.Duration

	// Minimum interval between requests
	minInterval time.Duration
	lastRequest time.Time
}

// NewRateLimiter allows perMinute requests per minute. Zero or less disables limiting.
func NewRateLimiter(perMinute int) *RateLimiter {
	r := &RateLimiter{
		limit:  perMinute,
		window: time.Minute,
	}
	if perMinute > 0 {
		r.minInterval = time.Minute / time.Duration(perMinute) / 4
	}
	r.resetsAt = time.Now().Add(r.window)
	return r
}

// Wait blocks until a request can be made without exceeding the budget
func (r *RateLimiter) Wait(ctx context.Context) error {
	if r.limit <= 0 {
		return ctx.Err()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if time.Now().After(r.resetsAt) {
		r.usage = 0
		r.resetsAt = time.Now().Add(r.window)
	}

	if r.usage >= r.limit {
		if err := r.sleep(ctx, time.Until(r.resetsAt)); err != nil {
			return err
		}
		r.usage = 0
		r.resetsAt = time.Now().Add(r.window)
	}

	if elapsed := time.Since(r.lastRequest); elapsed < r.minInterval {
		if err := r.sleep(ctx, r.minInterval-elapsed); err != nil {
			return err
		}
	}

	r.usage++
	r.lastRequest = time.Now()
	return nil
}

// sleep releases the lock while waiting. Callers hold mu.
func (r *RateLimiter) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Unlock()
	defer r.mu.Lock()

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Remaining returns how many requests are left in the current window
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit <= 0 {
		return -1
	}
	if time.Now().After(r.resetsAt) {
		return r.limit
	}
	return r.limit - r.usage
}

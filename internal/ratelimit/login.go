package ratelimit

import (
	"context"
	"strings"
	"time"
)

// Login attempt defaults
const (
	DefaultMaxAttempts = 5
	DefaultWindow      = 15 * time.Minute

	loginKeyPrefix = "login:"
)

// LoginLimiter locks out an identity after too many failed attempts within a window
type LoginLimiter struct {
	store       Store
	MaxAttempts int
	Window      time.Duration
}

// NewLoginLimiter creates a limiter with the default attempt count and window
func NewLoginLimiter(store Store) *LoginLimiter {
	return &LoginLimiter{
		store:       store,
		MaxAttempts: DefaultMaxAttempts,
		Window:      DefaultWindow,
	}
}

func loginKey(email string) string {
	return loginKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}

// Allowed reports whether email may attempt a login. When locked out it also
// returns how long until the window expires.
func (l *LoginLimiter) Allowed(ctx context.Context, email string) (bool, time.Duration, error) {
	key := loginKey(email)

	n, err := l.store.Get(ctx, key)
	if err != nil {
		return false, 0, err
	}
	if n < int64(l.MaxAttempts) {
		return true, 0, nil
	}

	retry, err := l.store.TTL(ctx, key)
	if err != nil {
		return false, 0, err
	}
	return false, retry, nil
}

// RecordFailure counts a failed attempt and returns how many remain
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) (int, error) {
	n, err := l.store.Incr(ctx, loginKey(email), l.Window)
	if err != nil {
		return 0, err
	}
	remaining := l.MaxAttempts - int(n)
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Reset clears the failure count after a successful login
func (l *LoginLimiter) Reset(ctx context.Context, email string) error {
	return l.store.Reset(ctx, loginKey(email))
}

package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginThrottle counts failed login attempts per subject in Redis and
// blocks further attempts once a threshold is reached within the window.
// A nil client disables throttling.
type LoginThrottle struct {
	client      *redis.Client
	maxAttempts int
	window      time.Duration
}

// NewLoginThrottle builds a throttle over the shared Redis client.
func NewLoginThrottle(client *redis.Client, maxAttempts int, window time.Duration) *LoginThrottle {
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	if window <= 0 {
		window = 5 * time.Minute
	}
	return &LoginThrottle{client: client, maxAttempts: maxAttempts, window: window}
}

// Allow reports whether a login attempt for the subject may proceed.
// Redis unavailability fails open; the credential check still guards access.
func (t *LoginThrottle) Allow(ctx context.Context, subject string) bool {
	if t == nil || t.client == nil {
		return true
	}
	count, err := t.client.Get(ctx, t.key(subject)).Int()
	if err != nil {
		return true
	}
	return count < t.maxAttempts
}

// RecordFailure increments the failed-attempt counter for the subject.
func (t *LoginThrottle) RecordFailure(ctx context.Context, subject string) {
	if t == nil || t.client == nil {
		return
	}
	key := t.key(subject)
	count, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	if count == 1 {
		t.client.Expire(ctx, key, t.window)
	}
}

// Reset clears the counter after a successful login.
func (t *LoginThrottle) Reset(ctx context.Context, subject string) {
	if t == nil || t.client == nil {
		return
	}
	t.client.Del(ctx, t.key(subject))
}

func (t *LoginThrottle) key(subject string) string {
	return "auth:login_attempts:" + subject
}

package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 10
	defaultWindow      = 15 * time.Minute
)

// LoginGuard throttles repeated failed logins per username, backed by Redis.
// Key format: loginfail:<username>, a counter expiring after the window.
type LoginGuard struct {
	client      *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewLoginGuard creates a LoginGuard wrapping the given Redis client.
// Non-positive limits fall back to the defaults.
func NewLoginGuard(client *redis.Client, maxFailures int64, window time.Duration) *LoginGuard {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginGuard{client: client, maxFailures: maxFailures, window: window}
}

// TooManyFailures reports whether the username has exhausted its failure
// budget for the current window.
func (g *LoginGuard) TooManyFailures(ctx context.Context, username string) (bool, error) {
	n, err := g.client.Get(ctx, g.key(username)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("login guard check: %w", err)
	}
	return n >= g.maxFailures, nil
}

// RecordFailure increments the failure counter and refreshes its expiry.
func (g *LoginGuard) RecordFailure(ctx context.Context, username string) error {
	pipe := g.client.TxPipeline()
	pipe.Incr(ctx, g.key(username))
	pipe.Expire(ctx, g.key(username), g.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login guard record: %w", err)
	}
	return nil
}

// Reset clears the failure counter after a successful login.
func (g *LoginGuard) Reset(ctx context.Context, username string) error {
	return g.client.Del(ctx, g.key(username)).Err()
}

func (g *LoginGuard) key(username string) string {
	return "loginfail:" + username
}

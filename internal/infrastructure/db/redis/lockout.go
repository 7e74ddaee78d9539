package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultLockoutWindow = 15 * time.Minute

// LockoutCounter counts consecutive failed logins per username in a
// TTL'd Redis key. The window re-arms on every failure and the key
// simply expires once attempts stop.
// Key format: lockout:<username>
type LockoutCounter struct {
	client *redis.Client
	window time.Duration
}

func NewLockoutCounter(client *redis.Client, window time.Duration) *LockoutCounter {
	if window <= 0 {
		window = defaultLockoutWindow
	}
	return &LockoutCounter{client: client, window: window}
}

// Failures returns the current consecutive-failure count.
func (l *LockoutCounter) Failures(ctx context.Context, username string) (int, error) {
	n, err := l.client.Get(ctx, l.key(username)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("lockout failures: %w", err)
	}
	return n, nil
}

// RecordFailure increments the count and re-arms the expiry window.
func (l *LockoutCounter) RecordFailure(ctx context.Context, username string) error {
	key := l.key(username)
	pipe := l.client.TxPipeline()
	pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("lockout record: %w", err)
	}
	return nil
}

// Reset clears the count after a successful login.
func (l *LockoutCounter) Reset(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, l.key(username)).Err(); err != nil {
		return fmt.Errorf("lockout reset: %w", err)
	}
	return nil
}

func (l *LockoutCounter) key(username string) string {
	return "lockout:" + username
}

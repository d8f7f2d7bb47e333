package utils

import (
	"context" // Context for Redis operations
	"errors"  // Error inspection
	"time"    // Lockout window

	"github.com/redis/go-redis/v9" // Redis client
)

// AttemptLimiter tracks failed logins per identity
type AttemptLimiter interface {
	Locked(ctx context.Context, identity string) (bool, error)
	Fail(ctx context.Context, identity string) error
	Reset(ctx context.Context, identity string) error
}

// RedisAttemptLimiter keeps one expiring counter per identity
type RedisAttemptLimiter struct {
	rdb         *redis.Client
	maxFailures int64
	window      time.Duration
}

// NewRedisAttemptLimiter locks an identity out for window after maxFailures failures
func NewRedisAttemptLimiter(rdb *redis.Client, maxFailures int, window time.Duration) *RedisAttemptLimiter {
	return &RedisAttemptLimiter{rdb: rdb, maxFailures: int64(maxFailures), window: window}
}

// AttemptKey is the Redis key holding the failure count for identity
func AttemptKey(identity string) string {
	return "auth:failures:" + identity
}

// Locked reports whether identity has reached the failure limit
func (l *RedisAttemptLimiter) Locked(ctx context.Context, identity string) (bool, error) {
	n, err := l.rdb.Get(ctx, AttemptKey(identity)).Int64()
	if errors.Is(err, redis.Nil) {
		return false, nil // No failures recorded
	} else if err != nil {
		return false, err
	}
	return n >= l.maxFailures, nil
}

// Fail records one failed attempt; the window starts at the first failure.
// SETNX and INCR run in one MULTI block so the counter always carries a TTL.
func (l *RedisAttemptLimiter) Fail(ctx context.Context, identity string) error {
	key := AttemptKey(identity)
	_, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, key, 0, l.window) // Starts the window, no-op if it is running
		pipe.Incr(ctx, key)               // INCR keeps the existing TTL
		return nil
	})
	if errors.Is(err, redis.Nil) {
		return nil // SETNX found a running window
	}
	return err
}

// Reset clears the failure count after a successful login
func (l *RedisAttemptLimiter) Reset(ctx context.Context, identity string) error {
	return l.rdb.Del(ctx, AttemptKey(identity)).Err()
}

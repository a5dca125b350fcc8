package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrCounterUnavailable is returned when no Redis client is configured.
var ErrCounterUnavailable = errors.New("counter store unavailable")

// CounterRepository keeps fixed-window counters in Redis.
type CounterRepository struct {
	client *redis.Client
}

// NewCounterRepository constructs a counter repository. A nil client disables it.
func NewCounterRepository(client *redis.Client) *CounterRepository {
	return &CounterRepository{client: client}
}

// Enabled reports whether a Redis client is configured.
func (r *CounterRepository) Enabled() bool {
	return r != nil && r.client != nil
}

// Increment bumps the counter at key. The first hit of a window starts its expiry.
// It returns the count within the window and the time left before it resets.
func (r *CounterRepository) Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if !r.Enabled() {
		return 0, 0, ErrCounterUnavailable
	}

	count, err := r.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis incr %s: %w", key, err)
	}
	if count == 1 {
		if err := r.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("redis expire %s: %w", key, err)
		}
		return count, window, nil
	}

	ttl, err := r.client.PTTL(ctx, key).Result()
	if err != nil {
		return 0, 0, fmt.Errorf("redis ttl %s: %w", key, err)
	}
	if ttl < 0 {
		// A key without expiry would never reset.
		if err := r.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, 0, fmt.Errorf("redis expire %s: %w", key, err)
		}
		ttl = window
	}
	return count, ttl, nil
}

// Ping checks connectivity.
func (r *CounterRepository) Ping(ctx context.Context) error {
	if !r.Enabled() {
		return ErrCounterUnavailable
	}
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection if present.
func (r *CounterRepository) Close() error {
	if !r.Enabled() {
		return nil
	}
	return r.client.Close()
}

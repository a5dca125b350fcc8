package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeCounter struct {
	enabled bool
	counts  map[string]int64
	err     error
}

func (f *fakeCounter) Enabled() bool { return f.enabled }

func (f *fakeCounter) Increment(_ context.Context, key string, window time.Duration) (int64, time.Duration, error) {
	if f.err != nil {
		return 0, 0, f.err
	}
	f.counts[key]++
	return f.counts[key], window, nil
}

func TestRateLimiterBlocksAfterLimit(t *testing.T) {
	store := &fakeCounter{enabled: true, counts: map[string]int64{}}
	limiter := NewRateLimiter(store, time.Minute, nil, nil)
	ctx := context.Background()

	first := limiter.Allow(ctx, "contact", "10.0.0.1", 2)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)

	assert.True(t, limiter.Allow(ctx, "contact", "10.0.0.1", 2).Allowed)

	blocked := limiter.Allow(ctx, "contact", "10.0.0.1", 2)
	assert.False(t, blocked.Allowed)
	assert.Equal(t, time.Minute, blocked.RetryAfter)

	assert.True(t, limiter.Allow(ctx, "contact", "10.0.0.2", 2).Allowed)
	assert.True(t, limiter.Allow(ctx, "login", "10.0.0.1", 2).Allowed)
}

func TestRateLimiterFailsOpen(t *testing.T) {
	ctx := context.Background()

	broken := NewRateLimiter(&fakeCounter{enabled: true, err: errors.New("redis down")}, time.Minute, nil, nil)
	assert.True(t, broken.Allow(ctx, "login", "ip", 1).Allowed)

	disabled := NewRateLimiter(&fakeCounter{enabled: false}, time.Minute, nil, nil)
	assert.True(t, disabled.Allow(ctx, "login", "ip", 1).Allowed)

	unlimited := NewRateLimiter(&fakeCounter{enabled: true, counts: map[string]int64{}}, time.Minute, nil, nil)
	for i := 0; i < 5; i++ {
		assert.True(t, unlimited.Allow(ctx, "login", "ip", 0).Allowed)
	}

	var nilLimiter *RateLimiter
	assert.True(t, nilLimiter.Allow(ctx, "login", "ip", 1).Allowed)
}

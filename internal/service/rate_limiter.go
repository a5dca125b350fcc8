package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type counterStore interface {
	Enabled() bool
	Increment(ctx context.Context, key string, window time.Duration) (int64, time.Duration, error)
}

// RateDecision is the outcome of one rate limit check.
type RateDecision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// RateLimiter applies fixed-window limits keyed by scope and client.
type RateLimiter struct {
	store   counterStore
	window  time.Duration
	logger  *zap.Logger
	metrics *MetricsService
}

// NewRateLimiter constructs a RateLimiter.
func NewRateLimiter(store counterStore, window time.Duration, logger *zap.Logger, metrics *MetricsService) *RateLimiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &RateLimiter{store: store, window: window, logger: logger, metrics: metrics}
}

// Allow counts a hit for client within scope. A missing store, a non-positive limit or a store
// failure lets the request through.
func (l *RateLimiter) Allow(ctx context.Context, scope, client string, limit int) RateDecision {
	if l == nil || l.store == nil || !l.store.Enabled() || limit <= 0 {
		return RateDecision{Allowed: true, Remaining: limit}
	}

	count, ttl, err := l.store.Increment(ctx, "ratelimit:"+scope+":"+client, l.window)
	if err != nil {
		l.logger.Warn("rate limiter unavailable", zap.String("scope", scope), zap.Error(err))
		return RateDecision{Allowed: true, Remaining: limit}
	}

	if count > int64(limit) {
		l.metrics.RecordRateLimited(scope)
		return RateDecision{Allowed: false, RetryAfter: ttl}
	}
	return RateDecision{Allowed: true, Remaining: limit - int(count)}
}

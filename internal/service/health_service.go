package service

import (
	"context"
	"database/sql"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/daycare-api/internal/models"
)

const (
	statusUp       = "up"
	statusDown     = "down"
	statusDisabled = "disabled"
)

type databasePinger interface {
	PingContext(ctx context.Context) error
	Stats() sql.DBStats
}

type redisPinger interface {
	Enabled() bool
	Ping(ctx context.Context) error
}

// HealthService reports dependency and runtime state.
type HealthService struct {
	db      databasePinger
	redis   redisPinger
	logger  *zap.Logger
	started time.Time
	timeout time.Duration
	now     func() time.Time
}

// NewHealthService constructs a HealthService. redis may be nil.
func NewHealthService(db databasePinger, redis redisPinger, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{db: db, redis: redis, logger: logger, started: time.Now(), timeout: 2 * time.Second, now: time.Now}
}

// Detailed pings every dependency and collects runtime statistics.
func (s *HealthService) Detailed(ctx context.Context) *models.HealthReport {
	now := s.now()
	report := &models.HealthReport{
		Timestamp: now.UTC(),
		Database:  s.database(ctx),
		Redis:     s.cache(ctx),
		Runtime:   runtimeHealth(now.Sub(s.started)),
	}
	report.Status = "healthy"
	if !report.Healthy() {
		report.Status = "unhealthy"
	}
	return report
}

func (s *HealthService) database(ctx context.Context) models.DatabaseHealth {
	if s.db == nil {
		return models.DatabaseHealth{Status: statusDown, Error: "database not configured"}
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stats := s.db.Stats()
	health := models.DatabaseHealth{
		Status:          statusUp,
		OpenConnections: stats.OpenConnections,
		InUse:           stats.InUse,
		Idle:            stats.Idle,
		MaxOpen:         stats.MaxOpenConnections,
		WaitCount:       stats.WaitCount,
	}
	if err := s.db.PingContext(pingCtx); err != nil {
		s.logger.Warn("database health check failed", zap.Error(err))
		health.Status = statusDown
		health.Error = "database unreachable"
	}
	return health
}

func (s *HealthService) cache(ctx context.Context) models.DependencyHealth {
	if s.redis == nil || !s.redis.Enabled() {
		return models.DependencyHealth{Status: statusDisabled}
	}
	pingCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.redis.Ping(pingCtx); err != nil {
		s.logger.Warn("redis health check failed", zap.Error(err))
		return models.DependencyHealth{Status: statusDown, Error: "redis unreachable"}
	}
	return models.DependencyHealth{Status: statusUp}
}

func runtimeHealth(uptime time.Duration) models.RuntimeHealth {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	return models.RuntimeHealth{
		Goroutines:    runtime.NumGoroutine(),
		HeapAllocMB:   mem.HeapAlloc / 1024 / 1024,
		SysMB:         mem.Sys / 1024 / 1024,
		NumGC:         mem.NumGC,
		UptimeSeconds: int64(uptime.Seconds()),
	}
}

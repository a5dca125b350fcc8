package models

import "time"

// DatabaseHealth reports pool state.
type DatabaseHealth struct {
	Status          string `json:"status"`
	Error           string `json:"error,omitempty"`
	OpenConnections int    `json:"open_connections"`
	InUse           int    `json:"in_use"`
	Idle            int    `json:"idle"`
	MaxOpen         int    `json:"max_open"`
	WaitCount       int64  `json:"wait_count"`
}

// DependencyHealth reports an optional dependency.
type DependencyHealth struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// RuntimeHealth reports process statistics.
type RuntimeHealth struct {
	Goroutines    int    `json:"goroutines"`
	HeapAllocMB   uint64 `json:"heap_alloc_mb"`
	SysMB         uint64 `json:"sys_mb"`
	NumGC         uint32 `json:"num_gc"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// HealthReport is the detailed health payload.
type HealthReport struct {
	Status    string           `json:"status"`
	Timestamp time.Time        `json:"timestamp"`
	Database  DatabaseHealth   `json:"database"`
	Redis     DependencyHealth `json:"redis"`
	Runtime   RuntimeHealth    `json:"runtime"`
}

// Healthy reports whether the critical dependencies are up.
func (h *HealthReport) Healthy() bool {
	return h.Database.Status == "up"
}

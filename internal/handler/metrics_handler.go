package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/daycare-api/internal/models"
	"github.com/noah-isme/daycare-api/internal/service"
)

type healthService interface {
	Detailed(ctx context.Context) *models.HealthReport
}

// MetricsHandler exposes observability endpoints.
type MetricsHandler struct {
	metrics *service.MetricsService
	health  healthService
	now     func() time.Time
}

// NewMetricsHandler constructs a metrics handler.
func NewMetricsHandler(metrics *service.MetricsService, health healthService) *MetricsHandler {
	return &MetricsHandler{metrics: metrics, health: health, now: time.Now}
}

// Prometheus serves the Prometheus metrics endpoint.
func (h *MetricsHandler) Prometheus(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// Health godoc
// @Summary Liveness probe
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *MetricsHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "timestamp": h.now().UTC()})
}

// Detailed godoc
// @Summary Dependency health
// @Description Database and Redis pings with runtime statistics; 503 when the database is down
// @Tags Health
// @Produce json
// @Success 200 {object} models.HealthReport
// @Failure 503 {object} models.HealthReport
// @Router /health/detailed [get]
func (h *MetricsHandler) Detailed(c *gin.Context) {
	if h.health == nil {
		c.Status(http.StatusServiceUnavailable)
		return
	}
	report := h.health.Detailed(c.Request.Context())
	status := http.StatusOK
	if !report.Healthy() {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

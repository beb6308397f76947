package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/floorplan-project/placement-api/internal/ports"
)

// startTime tracks process start for uptime reporting.
var startTime = time.Now()

// HealthMetricsHandler serves the root-level health and metrics endpoints.
type HealthMetricsHandler struct {
	placementService ports.PlacementService
	metricsCollector ports.MetricsCollector
}

// NewHealthMetricsHandler creates a new health/metrics handler.
func NewHealthMetricsHandler(
	placementService ports.PlacementService,
	metricsCollector ports.MetricsCollector,
) *HealthMetricsHandler {
	return &HealthMetricsHandler{
		placementService: placementService,
		metricsCollector: metricsCollector,
	}
}

// HealthCheck handles GET /health requests.
func (h *HealthMetricsHandler) HealthCheck(c *gin.Context) {
	healthData := gin.H{
		"uptime_seconds": time.Since(startTime).Seconds(),
		"system":         h.systemInfo(),
	}

	healthy := true
	if h.placementService != nil {
		if err := h.placementService.HealthCheck(c.Request.Context()); err != nil {
			healthy = false
			healthData["optimizer_error"] = err.Error()
		}
	} else {
		healthy = false
	}
	healthData["optimizer_healthy"] = healthy

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
		healthData["status"] = "unhealthy"
	} else {
		healthData["status"] = "healthy"
	}
	c.JSON(status, healthData)
}

// GetMetrics handles GET /metrics requests.
func (h *HealthMetricsHandler) GetMetrics(c *gin.Context) {
	metrics := gin.H{}
	if h.metricsCollector != nil {
		metrics["http"] = h.metricsCollector.GetMetrics()
	}
	if h.placementService != nil {
		if serviceMetrics, err := h.placementService.GetMetrics(c.Request.Context()); err == nil {
			metrics["placement"] = serviceMetrics
		}
	}
	c.JSON(http.StatusOK, metrics)
}

// systemInfo reports basic runtime statistics.
func (h *HealthMetricsHandler) systemInfo() gin.H {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return gin.H{
		"go_version":      runtime.Version(),
		"goroutines":      runtime.NumGoroutine(),
		"memory_alloc_mb": mem.Alloc / 1024 / 1024,
		"num_gc":          mem.NumGC,
	}
}

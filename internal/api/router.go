package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/floorplan-project/placement-api/internal/handlers"
	"github.com/floorplan-project/placement-api/internal/ports"
)

// RouterImpl implements the Router interface.
type RouterImpl struct {
	placementHandler *handlers.PlacementHandler
	healthHandler    *handlers.HealthMetricsHandler

	loggingMiddleware ports.LoggingMiddleware
	errorMiddleware   ports.ErrorMiddleware
	metricsMiddleware ports.MetricsMiddleware
	corsMiddleware    ports.CORSMiddleware
}

// NewRouter creates a new router.
func NewRouter(
	placementHandler *handlers.PlacementHandler,
	healthHandler *handlers.HealthMetricsHandler,
	loggingMiddleware ports.LoggingMiddleware,
	errorMiddleware ports.ErrorMiddleware,
	metricsMiddleware ports.MetricsMiddleware,
	corsMiddleware ports.CORSMiddleware,
) ports.Router {
	return &RouterImpl{
		placementHandler:  placementHandler,
		healthHandler:     healthHandler,
		loggingMiddleware: loggingMiddleware,
		errorMiddleware:   errorMiddleware,
		metricsMiddleware: metricsMiddleware,
		corsMiddleware:    corsMiddleware,
	}
}

// SetupRoutes configures all application routes.
func (r *RouterImpl) SetupRoutes(engine *gin.Engine) error {
	if err := r.ApplyMiddleware(engine); err != nil {
		return err
	}

	if err := r.RegisterHealthRoutes(engine); err != nil {
		return err
	}

	if err := r.RegisterMetricsRoutes(engine); err != nil {
		return err
	}

	apiV1 := engine.Group("/api/v1")
	if err := r.RegisterAPIRoutes(apiV1); err != nil {
		return err
	}

	engine.GET("/", r.handleRoot)
	return nil
}

// RegisterAPIRoutes registers API v1 routes.
func (r *RouterImpl) RegisterAPIRoutes(group *gin.RouterGroup) error {
	if r.placementHandler == nil {
		return &RouterError{
			Route:   "/api/v1/floorplan",
			Message: "placement handler not available",
		}
	}

	floorplanGroup := group.Group("/floorplan")

	// Optimization endpoints
	floorplanGroup.POST("/place", r.placementHandler.RunPlacement)
	floorplanGroup.POST("/baseline", r.placementHandler.RunBaseline)
	floorplanGroup.POST("/cost", r.placementHandler.EvaluateCost)

	// Configuration endpoints
	floorplanGroup.GET("/config", r.placementHandler.GetConfig)
	floorplanGroup.PUT("/config", r.placementHandler.UpdateConfig)
	floorplanGroup.POST("/config/validate", r.placementHandler.ValidateConfig)

	// Design import
	floorplanGroup.POST("/import", r.placementHandler.ImportDesign)

	// Metrics endpoints
	floorplanGroup.GET("/metrics", r.placementHandler.GetMetrics)
	floorplanGroup.POST("/metrics/reset", r.placementHandler.ResetMetrics)

	// Status and health endpoints
	floorplanGroup.GET("/status", r.placementHandler.GetStatus)
	floorplanGroup.GET("/health", r.placementHandler.GetHealth)

	return nil
}

// RegisterHealthRoutes registers health check routes.
func (r *RouterImpl) RegisterHealthRoutes(engine *gin.Engine) error {
	if r.healthHandler == nil {
		return &RouterError{
			Route:   "/health",
			Message: "health handler not available",
		}
	}

	engine.GET("/health", r.healthHandler.HealthCheck)
	engine.GET("/health/ready", r.healthHandler.HealthCheck) // Kubernetes readiness probe
	engine.GET("/health/live", r.healthHandler.HealthCheck)  // Kubernetes liveness probe

	return nil
}

// RegisterMetricsRoutes registers metrics routes.
func (r *RouterImpl) RegisterMetricsRoutes(engine *gin.Engine) error {
	if r.healthHandler == nil {
		return &RouterError{
			Route:   "/metrics",
			Message: "health handler not available",
		}
	}

	engine.GET("/metrics", r.healthHandler.GetMetrics)
	return nil
}

// ApplyMiddleware applies middleware to routes.
func (r *RouterImpl) ApplyMiddleware(engine *gin.Engine) error {
	// Recovery middleware (should be first)
	engine.Use(gin.Recovery())

	if r.corsMiddleware != nil {
		engine.Use(r.corsMiddleware.Apply())
	}

	if r.loggingMiddleware != nil {
		engine.Use(r.loggingMiddleware.Apply())
	}

	if r.metricsMiddleware != nil {
		engine.Use(r.metricsMiddleware.Apply())
	}

	if r.errorMiddleware != nil {
		engine.Use(r.errorMiddleware.Apply())
	}

	return nil
}

// handleRoot handles the root endpoint.
func (r *RouterImpl) handleRoot(c *gin.Context) {
	endpoints := map[string]string{
		"place":    "/api/v1/floorplan/place",
		"baseline": "/api/v1/floorplan/baseline",
		"cost":     "/api/v1/floorplan/cost",
		"config":   "/api/v1/floorplan/config",
		"import":   "/api/v1/floorplan/import",
		"health":   "/health",
		"metrics":  "/metrics",
	}

	c.JSON(http.StatusOK, gin.H{
		"service":   "Macro Floorplanning API",
		"version":   "1.0.0",
		"status":    "running",
		"endpoints": endpoints,
		"features":  []string{"baseline_placement", "simulated_annealing", "cost_evaluation", "csv_import"},
	})
}

// RouterError represents a router configuration error.
type RouterError struct {
	Route   string
	Message string
}

// Error implements the error interface.
func (e *RouterError) Error() string {
	return "Router error for route '" + e.Route + "': " + e.Message
}

// MiddlewareFactory provides methods to create middleware instances.
type MiddlewareFactory struct{}

// NewMiddlewareFactory creates a new middleware factory.
func NewMiddlewareFactory() *MiddlewareFactory {
	return &MiddlewareFactory{}
}

// CreateLoggingMiddleware creates a logging middleware.
func (mf *MiddlewareFactory) CreateLoggingMiddleware() ports.LoggingMiddleware {
	return &LoggingMiddlewareImpl{}
}

// CreateErrorMiddleware creates an error handling middleware.
func (mf *MiddlewareFactory) CreateErrorMiddleware() ports.ErrorMiddleware {
	return &ErrorMiddlewareImpl{}
}

// CreateMetricsMiddleware creates a metrics collection middleware.
func (mf *MiddlewareFactory) CreateMetricsMiddleware(collector ports.MetricsCollector) ports.MetricsMiddleware {
	return &MetricsMiddlewareImpl{collector: collector}
}

// CreateCORSMiddleware creates a CORS handling middleware.
func (mf *MiddlewareFactory) CreateCORSMiddleware() ports.CORSMiddleware {
	return &CORSMiddlewareImpl{}
}

// LoggingMiddlewareImpl implements the LoggingMiddleware interface.
type LoggingMiddlewareImpl struct{}

// Apply applies the logging middleware to a Gin handler.
func (lm *LoggingMiddlewareImpl) Apply() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s %s\n",
			param.TimeStamp.Format("2006/01/02 - 15:04:05"),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
		)
	})
}

// ErrorMiddlewareImpl implements the ErrorMiddleware interface.
type ErrorMiddlewareImpl struct{}

// Apply applies the error handling middleware to a Gin handler.
func (em *ErrorMiddlewareImpl) Apply() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) > 0 && !c.Writer.Written() {
			err := c.Errors.Last()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Internal server error",
				"details": err.Error(),
			})
		}
	}
}

// MetricsMiddlewareImpl implements the MetricsMiddleware interface.
type MetricsMiddlewareImpl struct {
	collector ports.MetricsCollector
}

// Apply applies the metrics collection middleware to a Gin handler.
func (mm *MetricsMiddlewareImpl) Apply() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if mm.collector != nil {
			mm.collector.IncrementRequestCount()
		}

		c.Next()

		if mm.collector != nil {
			mm.collector.RecordResponseTime(time.Since(start).Milliseconds())
			if c.Writer.Status() >= http.StatusBadRequest {
				mm.collector.IncrementErrorCount()
			}
		}
	}
}

// CORSMiddlewareImpl implements the CORSMiddleware interface.
type CORSMiddlewareImpl struct{}

// Apply applies the CORS handling middleware to a Gin handler.
func (cm *CORSMiddlewareImpl) Apply() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
		c.Header("Access-Control-Max-Age", "86400")

		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusOK)
			c.Abort()
			return
		}

		c.Next()
	}
}

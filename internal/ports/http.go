package ports

import "github.com/gin-gonic/gin"

// Router defines the interface for HTTP route configuration.
type Router interface {
	// SetupRoutes configures all application routes
	SetupRoutes(engine *gin.Engine) error

	// RegisterAPIRoutes registers API v1 routes
	RegisterAPIRoutes(group *gin.RouterGroup) error

	// RegisterHealthRoutes registers health check routes
	RegisterHealthRoutes(engine *gin.Engine) error

	// RegisterMetricsRoutes registers metrics routes
	RegisterMetricsRoutes(engine *gin.Engine) error

	// ApplyMiddleware applies middleware to routes
	ApplyMiddleware(engine *gin.Engine) error
}

// LoggingMiddleware defines the interface for request logging middleware.
type LoggingMiddleware interface {
	// Apply returns the gin middleware handler
	Apply() gin.HandlerFunc
}

// ErrorMiddleware defines the interface for error handling middleware.
type ErrorMiddleware interface {
	// Apply returns the gin middleware handler
	Apply() gin.HandlerFunc
}

// MetricsMiddleware defines the interface for metrics collection middleware.
type MetricsMiddleware interface {
	// Apply returns the gin middleware handler
	Apply() gin.HandlerFunc
}

// CORSMiddleware defines the interface for CORS handling middleware.
type CORSMiddleware interface {
	// Apply returns the gin middleware handler
	Apply() gin.HandlerFunc
}

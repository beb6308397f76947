package ports

import (
	"context"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// PlacementService defines the interface for floorplan optimization
// operations.
type PlacementService interface {
	// RunPlacement runs baseline construction followed by simulated
	// annealing and returns the optimized state
	RunPlacement(ctx context.Context, request *floorplan.PlacementRequest) (*floorplan.AnnealingResult, error)

	// RunBaseline runs only the constructive placer
	RunBaseline(ctx context.Context, request *floorplan.PlacementRequest) (*floorplan.AnnealingResult, error)

	// EvaluateCost scores an explicit placement state
	EvaluateCost(ctx context.Context, request *floorplan.CostRequest) (*floorplan.CostBreakdown, error)

	// GetConfiguration returns the service's default annealing configuration
	GetConfiguration(ctx context.Context) (*floorplan.AnnealingConfig, error)

	// UpdateConfiguration replaces the service's default annealing configuration
	UpdateConfiguration(ctx context.Context, config *floorplan.AnnealingConfig) error

	// ValidateConfiguration validates an annealing configuration
	ValidateConfiguration(ctx context.Context, config *floorplan.AnnealingConfig) error

	// GetMetrics returns placement service metrics
	GetMetrics(ctx context.Context) (*floorplan.PlacementMetrics, error)

	// ResetMetrics resets all service metrics
	ResetMetrics(ctx context.Context) error

	// HealthCheck performs a health check on the optimizer
	HealthCheck(ctx context.Context) error

	// GetInstanceInfo returns service instance information
	GetInstanceInfo(ctx context.Context) map[string]interface{}

	// AddObserver registers a run lifecycle observer
	AddObserver(observer PlacementObserver)
}

// ValidationService defines the interface for request validation.
type ValidationService interface {
	// ValidatePlacementRequest validates a full optimization request
	ValidatePlacementRequest(request *floorplan.PlacementRequest) error

	// ValidateCostRequest validates a cost evaluation request
	ValidateCostRequest(request *floorplan.CostRequest) error

	// ValidateAnnealingConfig validates an annealing configuration
	ValidateAnnealingConfig(config *floorplan.AnnealingConfig) error
}

// PlacementObserver receives run lifecycle notifications.
type PlacementObserver interface {
	// OnRunStarted is called when an optimization run begins
	OnRunStarted(requestID string, blockCount int)

	// OnProgress is called once per outer annealing iteration
	OnProgress(requestID string, iteration int, temperature, cost float64)

	// OnRunCompleted is called when a run finishes successfully
	OnRunCompleted(requestID string, result *floorplan.AnnealingResult)

	// OnRunFailed is called when a run errors or is infeasible
	OnRunFailed(requestID string, err error)
}

// MetricsCollector defines the interface for collecting request metrics.
type MetricsCollector interface {
	// IncrementRequestCount increments the total request counter
	IncrementRequestCount()

	// IncrementErrorCount increments the error counter
	IncrementErrorCount()

	// RecordProcessingTime records the time taken for processing
	RecordProcessingTime(duration int64)

	// RecordResponseTime records the total response time
	RecordResponseTime(duration int64)

	// GetMetrics returns current metrics snapshot
	GetMetrics() map[string]interface{}

	// Reset resets all metrics
	Reset()
}

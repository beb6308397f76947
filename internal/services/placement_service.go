package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/engine/anneal"
	"github.com/floorplan-project/placement-api/internal/engine/baseline"
	"github.com/floorplan-project/placement-api/internal/engine/cost"
	"github.com/floorplan-project/placement-api/internal/engine/geometry"
	"github.com/floorplan-project/placement-api/internal/ports"
)

// placementService implements the PlacementService interface.
type placementService struct {
	mu            sync.RWMutex
	defaultConfig *floorplan.AnnealingConfig
	metrics       *floorplan.PlacementMetrics
	observers     []ports.PlacementObserver
	instanceID    string
	createdAt     time.Time
	lastRunAt     time.Time
}

// NewPlacementService creates a new placement service. A nil config selects
// the reference defaults.
func NewPlacementService(config *floorplan.AnnealingConfig) (ports.PlacementService, error) {
	if config == nil {
		config = floorplan.DefaultAnnealingConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &placementService{
		defaultConfig: config,
		metrics:       floorplan.NewPlacementMetrics(),
		observers:     make([]ports.PlacementObserver, 0),
		instanceID:    "placement-service-" + uuid.NewString(),
		createdAt:     time.Now(),
	}, nil
}

// AddObserver registers a run lifecycle observer.
func (s *placementService) AddObserver(o ports.PlacementObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// RunPlacement runs baseline construction followed by simulated annealing.
func (s *placementService) RunPlacement(ctx context.Context, request *floorplan.PlacementRequest) (*floorplan.AnnealingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := request.Validate(); err != nil {
		s.recordRequestError(err)
		s.notifyRunFailed(request.RequestID, err)
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	select {
	case <-ctx.Done():
		err := ctx.Err()
		s.notifyRunFailed(request.RequestID, err)
		return nil, err
	default:
	}

	config := request.Config
	if config == nil {
		config = s.defaultConfig
	}

	annealer, err := anneal.New(request.Blocks, request.Nets, request.Die, config)
	if err != nil {
		s.recordRequestError(err)
		s.notifyRunFailed(request.RequestID, err)
		return nil, fmt.Errorf("annealer setup failed: %w", err)
	}
	annealer.SetProgress(func(iteration int, temperature, currentCost, acceptRate float64) {
		s.notifyProgress(request.RequestID, iteration, temperature, currentCost)
	})

	s.notifyRunStarted(request.RequestID, len(request.Blocks))
	s.lastRunAt = time.Now()

	result, err := annealer.Run()
	if err != nil {
		s.metrics.RecordError(floorplan.ErrorProcessing)
		s.notifyRunFailed(request.RequestID, err)
		return nil, fmt.Errorf("annealing failed: %w", err)
	}
	if result == nil {
		s.metrics.RecordInfeasible()
		infeasible := floorplan.NewPlacementError(floorplan.ErrorInfeasiblePlacement,
			"baseline placer could not fit all blocks on the die")
		s.notifyRunFailed(request.RequestID, infeasible)
		return &floorplan.AnnealingResult{Status: floorplan.StatusInfeasible}, nil
	}

	s.metrics.RecordRun(result.ProcessingTime, result.BestCost)
	s.notifyRunCompleted(request.RequestID, result)
	return result, nil
}

// RunBaseline runs only the constructive placer and scores its output.
func (s *placementService) RunBaseline(ctx context.Context, request *floorplan.PlacementRequest) (*floorplan.AnnealingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := request.Validate(); err != nil {
		s.recordRequestError(err)
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	start := time.Now()
	placement, ok := baseline.Place(request.Blocks, request.Die, request.Nets)
	if !ok {
		s.metrics.RecordInfeasible()
		return &floorplan.AnnealingResult{Status: floorplan.StatusInfeasible}, nil
	}

	config := request.EffectiveConfig()
	snapped := make(floorplan.Placement, len(placement))
	for id, pt := range placement {
		snapped[id] = floorplan.Point{
			X: geometry.Snap(pt.X, config.PlacementPitch),
			Y: geometry.Snap(pt.Y, config.PlacementPitch),
		}
	}
	orientations := floorplan.NewOrientations(request.Blocks)
	breakdown := cost.Breakdown(snapped, orientations, request.Blocks, request.Nets, request.Die)

	result := &floorplan.AnnealingResult{
		Placement:      snapped,
		Orientations:   orientations,
		BestCost:       breakdown.Total,
		BaselineCost:   breakdown.Total,
		CostHistory:    []float64{breakdown.Total},
		Breakdown:      breakdown,
		Status:         floorplan.StatusSuccess,
		ProcessingTime: time.Since(start).Milliseconds(),
	}
	s.metrics.RecordRun(result.ProcessingTime, result.BestCost)
	return result, nil
}

// EvaluateCost scores an explicit placement state.
func (s *placementService) EvaluateCost(ctx context.Context, request *floorplan.CostRequest) (*floorplan.CostBreakdown, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if err := request.Validate(); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}

	breakdown := cost.Breakdown(request.Placement, request.Orientations,
		request.Blocks, request.Nets, request.Die)
	return &breakdown, nil
}

// GetConfiguration returns a copy of the default annealing configuration.
func (s *placementService) GetConfiguration(ctx context.Context) (*floorplan.AnnealingConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	configCopy := *s.defaultConfig
	if s.defaultConfig.RandomSeed != nil {
		seed := *s.defaultConfig.RandomSeed
		configCopy.RandomSeed = &seed
	}
	return &configCopy, nil
}

// UpdateConfiguration replaces the default annealing configuration.
func (s *placementService) UpdateConfiguration(ctx context.Context, config *floorplan.AnnealingConfig) error {
	if config == nil {
		return floorplan.NewPlacementError(floorplan.ErrorInvalidConfig, "configuration cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaultConfig = config
	return nil
}

// ValidateConfiguration validates an annealing configuration.
func (s *placementService) ValidateConfiguration(ctx context.Context, config *floorplan.AnnealingConfig) error {
	if config == nil {
		return floorplan.NewPlacementError(floorplan.ErrorInvalidConfig, "configuration cannot be nil")
	}
	return config.Validate()
}

// GetMetrics returns a copy of the service metrics.
func (s *placementService) GetMetrics(ctx context.Context) (*floorplan.PlacementMetrics, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metricsCopy := *s.metrics
	metricsCopy.ErrorCounts = make(map[floorplan.PlacementErrorType]int64, len(s.metrics.ErrorCounts))
	for k, v := range s.metrics.ErrorCounts {
		metricsCopy.ErrorCounts[k] = v
	}
	return &metricsCopy, nil
}

// ResetMetrics resets all service metrics.
func (s *placementService) ResetMetrics(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.metrics = floorplan.NewPlacementMetrics()
	return nil
}

// HealthCheck runs a tiny baseline placement to prove the placer is
// functional; the annealer is not exercised.
func (s *placementService) HealthCheck(ctx context.Context) error {
	block, err := floorplan.NewBlock("health-check", 1, 1, 0, 0)
	if err != nil {
		return fmt.Errorf("health check setup failed: %w", err)
	}
	die, err := floorplan.NewDie(10, 10)
	if err != nil {
		return fmt.Errorf("health check setup failed: %w", err)
	}

	placement, ok := baseline.Place([]floorplan.Block{block}, die, nil)
	if !ok || len(placement) != 1 {
		return floorplan.NewPlacementError(floorplan.ErrorProcessing, "health check placement failed")
	}
	return nil
}

// GetInstanceInfo returns service instance information.
func (s *placementService) GetInstanceInfo(ctx context.Context) map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	info := map[string]interface{}{
		"instance_id":   s.instanceID,
		"created_at":    s.createdAt,
		"total_runs":    s.metrics.TotalRuns,
		"deterministic": s.defaultConfig.IsDeterministic(),
	}
	if !s.lastRunAt.IsZero() {
		info["last_run_at"] = s.lastRunAt
	}
	return info
}

// recordRequestError maps a validation error onto the metrics counters.
func (s *placementService) recordRequestError(err error) {
	if perr, ok := err.(*floorplan.PlacementError); ok {
		s.metrics.RecordError(perr.ErrorType)
		return
	}
	s.metrics.RecordError(floorplan.ErrorProcessing)
}

func (s *placementService) notifyRunStarted(requestID string, blockCount int) {
	for _, o := range s.observers {
		o.OnRunStarted(requestID, blockCount)
	}
}

func (s *placementService) notifyProgress(requestID string, iteration int, temperature, costValue float64) {
	for _, o := range s.observers {
		o.OnProgress(requestID, iteration, temperature, costValue)
	}
}

func (s *placementService) notifyRunCompleted(requestID string, result *floorplan.AnnealingResult) {
	for _, o := range s.observers {
		o.OnRunCompleted(requestID, result)
	}
}

func (s *placementService) notifyRunFailed(requestID string, err error) {
	for _, o := range s.observers {
		o.OnRunFailed(requestID, err)
	}
}

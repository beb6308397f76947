package floorplan

import "time"

// CostBreakdown carries the five additive cost terms alongside their sum.
type CostBreakdown struct {
	Wirelength float64 `json:"wirelength"`
	Overlap    float64 `json:"overlap"`
	Boundary   float64 `json:"boundary"`
	Thermal    float64 `json:"thermal"`
	Center     float64 `json:"center"`
	Total      float64 `json:"total"`
}

// AnnealingResult represents the outcome of a full optimization run.
type AnnealingResult struct {
	Placement       Placement     `json:"placement"`
	Orientations    Orientations  `json:"orientations"`
	BestCost        float64       `json:"best_cost"`
	BaselineCost    float64       `json:"baseline_cost"`
	CostHistory     []float64     `json:"cost_history"`
	OuterIterations int           `json:"outer_iterations"`
	Breakdown       CostBreakdown `json:"breakdown"`
	Status          RunStatus     `json:"status"`
	ProcessingTime  int64         `json:"processing_time_ms"`
}

// IsSuccessful returns true if the run produced a usable placement
func (r *AnnealingResult) IsSuccessful() bool {
	return r.Status.IsSuccessful()
}

// PlacementMetrics represents performance and behavioral metrics of the
// placement service.
type PlacementMetrics struct {
	TotalRuns             int64                        `json:"total_runs"`
	InfeasibleRuns        int64                        `json:"infeasible_runs"`
	AverageProcessingTime int64                        `json:"average_processing_time_ms"`
	AverageBestCost       float64                      `json:"average_best_cost"`
	LastBestCost          float64                      `json:"last_best_cost"`
	ErrorCounts           map[PlacementErrorType]int64 `json:"error_counts"`
}

// NewPlacementMetrics creates a new metrics instance
func NewPlacementMetrics() *PlacementMetrics {
	return &PlacementMetrics{
		ErrorCounts: make(map[PlacementErrorType]int64),
	}
}

// RecordRun records a completed optimization run
func (m *PlacementMetrics) RecordRun(processingTime int64, bestCost float64) {
	m.TotalRuns++
	if m.TotalRuns == 1 {
		m.AverageProcessingTime = processingTime
		m.AverageBestCost = bestCost
	} else {
		m.AverageProcessingTime += (processingTime - m.AverageProcessingTime) / m.TotalRuns
		m.AverageBestCost += (bestCost - m.AverageBestCost) / float64(m.TotalRuns)
	}
	m.LastBestCost = bestCost
}

// RecordInfeasible records a run rejected by the baseline placer
func (m *PlacementMetrics) RecordInfeasible() {
	m.TotalRuns++
	m.InfeasibleRuns++
}

// RecordError records an error occurrence
func (m *PlacementMetrics) RecordError(errorType PlacementErrorType) {
	if m.ErrorCounts == nil {
		m.ErrorCounts = make(map[PlacementErrorType]int64)
	}
	m.ErrorCounts[errorType]++
}

// GetRunDuration returns the average processing time as a time.Duration
func (m *PlacementMetrics) GetRunDuration() time.Duration {
	return time.Duration(m.AverageProcessingTime) * time.Millisecond
}

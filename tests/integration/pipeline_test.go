package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/engine/cost"
	"github.com/floorplan-project/placement-api/internal/engine/geometry"
	"github.com/floorplan-project/placement-api/internal/ports"
	"github.com/floorplan-project/placement-api/internal/services"
)

func newService(t *testing.T) ports.PlacementService {
	t.Helper()
	service, err := services.NewPlacementService(nil)
	require.NoError(t, err)
	return service
}

func fastConfig(seed int64) *floorplan.AnnealingConfig {
	cfg := floorplan.DefaultAnnealingConfig()
	cfg.RandomSeed = &seed
	cfg.FinalTemp = 1.0
	cfg.ChainLength = 20
	return cfg
}

func designRequest(cfg *floorplan.AnnealingConfig) *floorplan.PlacementRequest {
	return &floorplan.PlacementRequest{
		Blocks: []floorplan.Block{
			{ID: "cpu", Width: 25, Height: 20, Power: 15},
			{ID: "mem0", Width: 20, Height: 25, Power: 5},
			{ID: "mem1", Width: 20, Height: 25, Power: 5},
			{ID: "io", Width: 10, Height: 10, Power: 0},
		},
		Nets: []floorplan.Net{
			{Name: "bus", Blocks: []string{"cpu", "mem0", "mem1"}, Weight: 3},
			{Name: "pins", Blocks: []string{"cpu", "io"}, Weight: 1},
		},
		Die:    floorplan.Die{Width: 120, Height: 120},
		Config: cfg,
	}
}

// TestPipelineEndToEnd exercises the full service path: validation,
// baseline construction, annealing and result assembly.
func TestPipelineEndToEnd(t *testing.T) {
	service := newService(t)

	result, err := service.RunPlacement(context.Background(), designRequest(fastConfig(42)))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, floorplan.StatusSuccess, result.Status)
	assert.Len(t, result.Placement, 4)
	assert.Len(t, result.Orientations, 4)
	assert.LessOrEqual(t, result.BestCost, result.BaselineCost)
	assert.Equal(t, result.BaselineCost, result.CostHistory[0])

	// The returned best state is legal on the grid.
	request := designRequest(nil)
	for _, b := range request.Blocks {
		pt := result.Placement[b.ID]
		w, h := geometry.EffectiveDims(b, result.Orientations)
		assert.Equal(t, pt.X, geometry.Snap(pt.X, 1.0))
		assert.Equal(t, pt.Y, geometry.Snap(pt.Y, 1.0))
		assert.True(t, geometry.InsideDie(pt.X, pt.Y, w, h, request.Die))
	}

	// The reported breakdown matches an independent evaluation (P5).
	bd := cost.Breakdown(result.Placement, result.Orientations, request.Blocks, request.Nets, request.Die)
	assert.Equal(t, bd.Total, result.Breakdown.Total)
	assert.Equal(t, result.BestCost, result.Breakdown.Total)
}

// TestPipelineDeterministic asserts P2 across the whole service stack.
func TestPipelineDeterministic(t *testing.T) {
	r1, err := newService(t).RunPlacement(context.Background(), designRequest(fastConfig(99)))
	require.NoError(t, err)
	r2, err := newService(t).RunPlacement(context.Background(), designRequest(fastConfig(99)))
	require.NoError(t, err)

	assert.Equal(t, r1.Placement, r2.Placement)
	assert.Equal(t, r1.Orientations, r2.Orientations)
	assert.Equal(t, r1.BestCost, r2.BestCost)
	assert.Equal(t, r1.CostHistory, r2.CostHistory)
}

func TestPipelineInfeasibleStatus(t *testing.T) {
	service := newService(t)

	request := &floorplan.PlacementRequest{
		Blocks: []floorplan.Block{
			{ID: "a", Width: 60, Height: 60},
			{ID: "b", Width: 60, Height: 60},
			{ID: "c", Width: 60, Height: 60},
		},
		Die: floorplan.Die{Width: 100, Height: 100},
	}

	result, err := service.RunPlacement(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, floorplan.StatusInfeasible, result.Status)
	assert.Nil(t, result.Placement)

	metrics, err := service.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), metrics.InfeasibleRuns)
}

func TestPipelineBaselineOnly(t *testing.T) {
	service := newService(t)

	request := designRequest(nil)
	result, err := service.RunBaseline(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, floorplan.StatusSuccess, result.Status)
	assert.Zero(t, result.Breakdown.Overlap, "baseline must be overlap free")
	assert.Zero(t, result.Breakdown.Boundary, "baseline must stay inside the die")
	assert.Equal(t, result.BestCost, result.BaselineCost)
}

func TestPipelineObserverNotifications(t *testing.T) {
	service := newService(t)

	observer := &recordingObserver{}
	service.AddObserver(observer)

	request := designRequest(fastConfig(42))
	request.RequestID = "run-1"
	result, err := service.RunPlacement(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, []string{"run-1"}, observer.started)
	assert.Equal(t, result.OuterIterations, observer.progressCalls)
	require.Len(t, observer.completed, 1)
	assert.Equal(t, result.BestCost, observer.completed[0].BestCost)
	assert.Empty(t, observer.failed)
}

func TestPipelineRejectsInvalidRequests(t *testing.T) {
	service := newService(t)

	t.Run("duplicate_block_ids", func(t *testing.T) {
		request := &floorplan.PlacementRequest{
			Blocks: []floorplan.Block{
				{ID: "a", Width: 10, Height: 10},
				{ID: "a", Width: 20, Height: 20},
			},
			Die: floorplan.Die{Width: 100, Height: 100},
		}
		_, err := service.RunPlacement(context.Background(), request)
		assert.Error(t, err)
	})

	t.Run("invalid_config", func(t *testing.T) {
		cfg := floorplan.DefaultAnnealingConfig()
		cfg.CoolingRate = 0
		request := designRequest(cfg)
		_, err := service.RunPlacement(context.Background(), request)
		assert.Error(t, err)
	})

	t.Run("cancelled_context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := service.RunPlacement(ctx, designRequest(fastConfig(42)))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPipelineMetricsAccumulate(t *testing.T) {
	service := newService(t)

	_, err := service.RunPlacement(context.Background(), designRequest(fastConfig(42)))
	require.NoError(t, err)
	_, err = service.RunPlacement(context.Background(), designRequest(fastConfig(43)))
	require.NoError(t, err)

	metrics, err := service.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), metrics.TotalRuns)
	assert.Greater(t, metrics.LastBestCost, 0.0)

	require.NoError(t, service.ResetMetrics(context.Background()))
	metrics, err = service.GetMetrics(context.Background())
	require.NoError(t, err)
	assert.Zero(t, metrics.TotalRuns)
}

// recordingObserver captures lifecycle notifications for assertions.
type recordingObserver struct {
	started       []string
	progressCalls int
	completed     []*floorplan.AnnealingResult
	failed        []error
}

func (r *recordingObserver) OnRunStarted(requestID string, blockCount int) {
	r.started = append(r.started, requestID)
}

func (r *recordingObserver) OnProgress(requestID string, iteration int, temperature, cost float64) {
	r.progressCalls++
}

func (r *recordingObserver) OnRunCompleted(requestID string, result *floorplan.AnnealingResult) {
	r.completed = append(r.completed, result)
}

func (r *recordingObserver) OnRunFailed(requestID string, err error) {
	r.failed = append(r.failed, err)
}

// Package anneal implements the hybrid simulated annealing driver. A
// geometric temperature schedule runs Markov chains of candidate moves; the
// Q-learning agent picks the move operator for each step and is rewarded by
// the observed cost delta, accepted or not. The driver is single-threaded
// and, given a fixed seed, fully deterministic.
package anneal

import (
	"math"
	"math/rand"
	"time"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/engine/agent"
	"github.com/floorplan-project/placement-api/internal/engine/baseline"
	"github.com/floorplan-project/placement-api/internal/engine/cost"
	"github.com/floorplan-project/placement-api/internal/engine/geometry"
)

// rejectionStop ends the run early once a whole chain is effectively frozen.
const rejectionStop = 0.99

// ProgressFunc is invoked synchronously once per outer iteration. It must
// return promptly; the driver blocks on it.
type ProgressFunc func(iteration int, temperature, currentCost, acceptRate float64)

// Annealer owns one optimization run over a fixed design.
type Annealer struct {
	blocks []floorplan.Block
	nets   []floorplan.Net
	die    floorplan.Die
	config *floorplan.AnnealingConfig

	rng      *rand.Rand
	learner  *agent.Agent
	progress ProgressFunc
}

// New creates an annealer for the given design. A nil config selects the
// defaults. The configured seed fixes the random stream; an absent seed
// draws from system entropy.
func New(blocks []floorplan.Block, nets []floorplan.Net, die floorplan.Die,
	config *floorplan.AnnealingConfig) (*Annealer, error) {

	if config == nil {
		config = floorplan.DefaultAnnealingConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	seed, ok := config.Seed()
	if !ok {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	return &Annealer{
		blocks:  blocks,
		nets:    nets,
		die:     die,
		config:  config,
		rng:     rng,
		learner: agent.New(rng),
	}, nil
}

// SetProgress installs the per-iteration progress callback.
func (an *Annealer) SetProgress(fn ProgressFunc) {
	an.progress = fn
}

// Run executes the full optimization: baseline seed, annealing loop,
// best-state tracking. A nil result with a nil error means the baseline
// found the die infeasible.
func (an *Annealer) Run() (*floorplan.AnnealingResult, error) {
	start := time.Now()

	seed, ok := baseline.Place(an.blocks, an.die, an.nets)
	if !ok {
		return nil, nil
	}

	pitch := an.config.PlacementPitch
	current := make(floorplan.Placement, len(seed))
	for id, pt := range seed {
		current[id] = floorplan.Point{X: geometry.Snap(pt.X, pitch), Y: geometry.Snap(pt.Y, pitch)}
	}
	orientations := floorplan.NewOrientations(an.blocks)

	currentCost := cost.Total(current, orientations, an.blocks, an.nets, an.die)
	baselineCost := currentCost

	best := current.Clone()
	bestOrient := orientations.Clone()
	bestCost := currentCost

	history := []float64{currentCost}
	temperature := an.config.InitialTemp
	rejectionRate := 0.0
	iteration := 0

	for temperature > an.config.FinalTemp && rejectionRate < rejectionStop {
		phase := agent.PhaseFor(temperature, an.config.InitialTemp)
		scale := an.config.MoveScale*(temperature/an.config.InitialTemp) + 1.0

		rejects := 0
		for step := 0; step < an.config.ChainLength; step++ {
			action := an.learner.ChooseAction(phase)

			candidate := current.Clone()
			candOrient := orientations.Clone()
			an.applyMove(action, candidate, candOrient, scale)

			candidateCost := cost.Total(candidate, candOrient, an.blocks, an.nets, an.die)
			delta := candidateCost - currentCost

			if an.accept(delta, temperature, candidateCost) {
				current = candidate
				orientations = candOrient
				currentCost = candidateCost
				if currentCost < bestCost {
					best = current.Clone()
					bestOrient = orientations.Clone()
					bestCost = currentCost
				}
			} else {
				rejects++
			}

			// The agent learns from every evaluated move; the phase is a
			// coarse band, so the successor state equals the state.
			an.learner.Learn(phase, action, agent.Reward(delta), phase)
		}

		rejectionRate = float64(rejects) / float64(an.config.ChainLength)
		history = append(history, currentCost)
		temperature *= an.config.CoolingRate
		iteration++

		if an.progress != nil {
			an.progress(iteration, temperature, currentCost, 1.0-rejectionRate)
		}

		if len(history) > an.config.MaxHistory {
			break
		}
	}

	return &floorplan.AnnealingResult{
		Placement:       best,
		Orientations:    bestOrient,
		BestCost:        bestCost,
		BaselineCost:    baselineCost,
		CostHistory:     history,
		OuterIterations: iteration,
		Breakdown:       cost.Breakdown(best, bestOrient, an.blocks, an.nets, an.die),
		Status:          floorplan.StatusSuccess,
		ProcessingTime:  time.Since(start).Milliseconds(),
	}, nil
}

// accept applies the Metropolis criterion. Non-finite candidate costs are
// treated as non-improving and never accepted.
func (an *Annealer) accept(delta, temperature, candidateCost float64) bool {
	if math.IsNaN(candidateCost) || math.IsInf(candidateCost, 0) {
		return false
	}
	if delta <= 0 {
		return true
	}
	return an.rng.Float64() < math.Exp(-delta/temperature)
}

// Package agent implements the three-state Q-learning hyper-heuristic that
// picks a move operator for each annealing step. The table is ephemeral:
// it lives for one run and is never serialized.
package agent

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Phase is the coarse annealing regime derived from the temperature ratio.
type Phase int

const (
	// PhaseExplore - high temperature, T/T0 > 0.66
	PhaseExplore Phase = iota
	// PhaseTransition - medium temperature, T/T0 > 0.33
	PhaseTransition
	// PhaseRefine - low temperature
	PhaseRefine

	numPhases = 3
)

// Action is a move operator index.
type Action int

const (
	// ActionDisplace moves one block by a temperature-scaled random offset.
	ActionDisplace Action = iota
	// ActionSwap exchanges the coordinates of two blocks.
	ActionSwap
	// ActionRotate flips one block's orientation.
	ActionRotate

	// NumActions is the size of the action set.
	NumActions = 3
)

// String returns the operator name.
func (a Action) String() string {
	switch a {
	case ActionDisplace:
		return "displace"
	case ActionSwap:
		return "swap"
	case ActionRotate:
		return "rotate"
	default:
		return "unknown"
	}
}

// Hyperparameters of the tabular learner.
const (
	// Epsilon is the exploration probability of the ε-greedy policy.
	Epsilon = 0.2
	// LearningRate is the Bellman update step size α.
	LearningRate = 0.1
	// DiscountFactor is the Bellman discount γ.
	DiscountFactor = 0.9
	// RewardScale divides the raw cost delta before clipping.
	RewardScale = 100.0
	// RewardClip bounds the reward magnitude.
	RewardClip = 10.0
)

// Agent is a 3×3 tabular Q-learner over (annealing phase, move operator).
type Agent struct {
	q   *mat.Dense
	rng *rand.Rand
}

// New creates an agent with a zero-initialized Q-table drawing exploration
// randomness from rng. The RNG is shared with the annealer so the whole run
// consumes a single deterministic stream.
func New(rng *rand.Rand) *Agent {
	return &Agent{
		q:   mat.NewDense(numPhases, NumActions, nil),
		rng: rng,
	}
}

// PhaseFor buckets the current temperature into the three-band state.
func PhaseFor(temperature, initialTemp float64) Phase {
	ratio := temperature / initialTemp
	switch {
	case ratio > 0.66:
		return PhaseExplore
	case ratio > 0.33:
		return PhaseTransition
	default:
		return PhaseRefine
	}
}

// ChooseAction applies the ε-greedy policy for the given phase. A uniform
// draw is also used when the phase's row is flat, so a fresh table does not
// lock onto action zero.
func (a *Agent) ChooseAction(phase Phase) Action {
	if a.rng.Float64() < Epsilon {
		return Action(a.rng.Intn(NumActions))
	}

	row := a.q.RawRowView(int(phase))
	best := 0
	flat := true
	for i := 1; i < NumActions; i++ {
		if row[i] != row[0] {
			flat = false
		}
		if row[i] > row[best] {
			best = i
		}
	}
	if flat {
		return Action(a.rng.Intn(NumActions))
	}
	return Action(best)
}

// Reward converts a cost delta into the clipped learning signal: improving
// moves (negative delta) earn positive reward.
func Reward(costDelta float64) float64 {
	if math.IsNaN(costDelta) {
		return 0
	}
	r := -costDelta / RewardScale
	if r > RewardClip {
		return RewardClip
	}
	if r < -RewardClip {
		return -RewardClip
	}
	return r
}

// Learn applies one Bellman update:
//
//	Q[s,a] ← (1−α)·Q[s,a] + α·(r + γ·max Q[s′,·])
//
// The driver passes next == phase because the coarse phase does not change
// within a chain.
func (a *Agent) Learn(phase Phase, action Action, reward float64, next Phase) {
	maxNext := a.q.At(int(next), 0)
	for i := 1; i < NumActions; i++ {
		if v := a.q.At(int(next), i); v > maxNext {
			maxNext = v
		}
	}

	old := a.q.At(int(phase), int(action))
	updated := (1-LearningRate)*old + LearningRate*(reward+DiscountFactor*maxNext)
	a.q.Set(int(phase), int(action), updated)
}

// Q returns one table entry, exposed for tests and diagnostics.
func (a *Agent) Q(phase Phase, action Action) float64 {
	return a.q.At(int(phase), int(action))
}

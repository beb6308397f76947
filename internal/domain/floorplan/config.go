package floorplan

// AnnealingConfig represents the hyperparameters of one simulated annealing
// run. The weights inside the cost kernel are compile-time constants; this
// record only controls the schedule and the move generator.
type AnnealingConfig struct {
	// Temperature schedule
	InitialTemp float64 `json:"initial_temp" validate:"required,gt=0"`
	FinalTemp   float64 `json:"final_temp" validate:"required,gt=0"`
	CoolingRate float64 `json:"cooling_rate" validate:"required,gt=0,lt=1"`

	// Markov chain
	ChainLength int     `json:"chain_length" validate:"required,gt=0"`
	MoveScale   float64 `json:"move_scale" validate:"required,gt=0"`

	// Placement grid
	PlacementPitch float64 `json:"placement_pitch" validate:"required,gt=0"`

	// Reproducibility. A nil seed means system entropy.
	RandomSeed *int64 `json:"random_seed,omitempty"`

	// Safety cap on the number of outer iterations recorded in the cost
	// history.
	MaxHistory int `json:"max_history" validate:"required,gt=0"`
}

// DefaultRandomSeed is the seed used when callers do not choose one.
const DefaultRandomSeed int64 = 42

// DefaultMaxHistory bounds the cost history; a run records at most this
// many outer iterations beyond the seed cost.
const DefaultMaxHistory = 8000

// DefaultAnnealingConfig returns the reference hyperparameters.
func DefaultAnnealingConfig() *AnnealingConfig {
	seed := DefaultRandomSeed
	return &AnnealingConfig{
		InitialTemp:    1000.0,
		FinalTemp:      1e-3,
		CoolingRate:    0.95,
		ChainLength:    100,
		MoveScale:      20.0,
		PlacementPitch: 1.0,
		RandomSeed:     &seed,
		MaxHistory:     DefaultMaxHistory,
	}
}

// Validate validates the annealing configuration ranges.
func (c *AnnealingConfig) Validate() error {
	if c.InitialTemp <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "initial temperature must be positive", "initial_temp")
	}
	if c.FinalTemp <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "final temperature must be positive", "final_temp")
	}
	if c.FinalTemp >= c.InitialTemp {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "final temperature must be below initial temperature", "final_temp")
	}
	if c.CoolingRate <= 0 || c.CoolingRate >= 1 {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "cooling rate must be in (0, 1)", "cooling_rate")
	}
	if c.ChainLength <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "chain length must be positive", "chain_length")
	}
	if c.MoveScale <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "move scale must be positive", "move_scale")
	}
	if c.PlacementPitch <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "placement pitch must be positive", "placement_pitch")
	}
	if c.MaxHistory <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidConfig, "max history must be positive", "max_history")
	}
	return nil
}

// Seed resolves the configured random seed. The second return value is
// false when the run should draw its seed from system entropy.
func (c *AnnealingConfig) Seed() (int64, bool) {
	if c.RandomSeed == nil {
		return 0, false
	}
	return *c.RandomSeed, true
}

// IsDeterministic returns true when a fixed seed is configured.
func (c *AnnealingConfig) IsDeterministic() bool {
	return c.RandomSeed != nil
}

package floorplan

// PlacementRequest represents a full optimization request: the design plus
// an optional annealing configuration. A nil config means the defaults.
type PlacementRequest struct {
	Blocks []Block          `json:"blocks" validate:"required,min=1,dive"`
	Nets   []Net            `json:"nets" validate:"omitempty,dive"`
	Die    Die              `json:"die" validate:"required"`
	Config *AnnealingConfig `json:"config,omitempty"`

	RequestID string          `json:"request_id,omitempty"`
	Metadata  *DesignMetadata `json:"metadata,omitempty"`
}

// Validate validates the request against the model construction invariants.
func (r *PlacementRequest) Validate() error {
	if len(r.Blocks) == 0 {
		return NewPlacementError(ErrorInvalidBlock, "request must contain at least one block")
	}
	if err := ValidateBlocks(r.Blocks); err != nil {
		return err
	}
	if err := ValidateNets(r.Nets); err != nil {
		return err
	}
	if err := r.Die.Validate(); err != nil {
		return err
	}
	if r.Config != nil {
		if err := r.Config.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveConfig returns the request's configuration, falling back to the
// defaults when none was supplied.
func (r *PlacementRequest) EffectiveConfig() *AnnealingConfig {
	if r.Config != nil {
		return r.Config
	}
	return DefaultAnnealingConfig()
}

// CostRequest represents a cost evaluation request for an explicit state.
type CostRequest struct {
	Blocks       []Block      `json:"blocks" validate:"required,min=1,dive"`
	Nets         []Net        `json:"nets" validate:"omitempty,dive"`
	Die          Die          `json:"die" validate:"required"`
	Placement    Placement    `json:"placement" validate:"required"`
	Orientations Orientations `json:"orientations,omitempty"`
}

// Validate validates the cost request.
func (r *CostRequest) Validate() error {
	if err := ValidateBlocks(r.Blocks); err != nil {
		return err
	}
	if err := ValidateNets(r.Nets); err != nil {
		return err
	}
	if err := r.Die.Validate(); err != nil {
		return err
	}
	if len(r.Placement) == 0 {
		return NewPlacementError(ErrorInvalidBlock, "cost request must contain a placement")
	}
	return nil
}

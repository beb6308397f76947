package cost

import "math"

// Cost kernel weights. These constants are part of the solver's public
// contract and must stay bit-for-bit stable across builds.
const (
	// OverlapWeight scales the pairwise overlap area penalty.
	OverlapWeight = 1e4
	// BoundaryPenaltyWeight is the flat per-block charge for leaving the die.
	BoundaryPenaltyWeight = 1e4
	// ThermalSpreadK is the Gaussian spread of pairwise heat transfer.
	ThermalSpreadK = 100.0
	// MaxSafeTemp is the modeled temperature above which the quadratic
	// thermal violation applies.
	MaxSafeTemp = 100.0
	// CenterPenaltyWeight scales the wall-attraction term that pushes
	// high-power blocks toward the die periphery.
	CenterPenaltyWeight = 2500.0
)

// ThermalCutoffDist is the aggressor influence radius. Beyond it the
// Gaussian term is below about 1e-4 of the aggressor power
// (exp(-9.21) ≈ 1.0003e-4), so aggressors outside the radius are skipped.
var ThermalCutoffDist = math.Sqrt(ThermalSpreadK * 9.21)

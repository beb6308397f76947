package floorplan

import "math"

// Die represents the bounding rectangle into which all blocks must fit.
// The origin is implicitly at (0, 0).
type Die struct {
	Width  float64 `json:"width" validate:"required,gt=0"`
	Height float64 `json:"height" validate:"required,gt=0"`
}

// NewDie creates a Die with positive dimensions.
func NewDie(width, height float64) (Die, error) {
	d := Die{Width: width, Height: height}
	if err := d.Validate(); err != nil {
		return Die{}, err
	}
	return d, nil
}

// Validate checks the die construction invariants.
func (d Die) Validate() error {
	if d.Width <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidDie, "die width must be positive", "width")
	}
	if d.Height <= 0 {
		return NewPlacementErrorWithField(ErrorInvalidDie, "die height must be positive", "height")
	}
	return nil
}

// Center returns the die center point.
func (d Die) Center() (float64, float64) {
	return d.Width / 2.0, d.Height / 2.0
}

// MaxCenterDist returns the distance from the die center to a corner, the
// normalization constant for the wall-attraction term.
func (d Die) MaxCenterDist() float64 {
	cx, cy := d.Center()
	return math.Sqrt(cx*cx + cy*cy)
}

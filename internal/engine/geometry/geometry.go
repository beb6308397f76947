// Package geometry implements the grid and rectangle primitives shared by
// the baseline placer, the cost kernel and the annealer: effective
// dimensions under rotation, pitch snapping, boundary clamping and strict
// axis-aligned overlap tests.
package geometry

import (
	"math"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// Rect is an axis-aligned rectangle with its lower-left corner at (X, Y).
type Rect struct {
	X, Y, W, H float64
}

// EffectiveDims returns the block's width and height under the given
// orientations. A rotated block swaps its declared dimensions.
func EffectiveDims(b floorplan.Block, orientations floorplan.Orientations) (w, h float64) {
	if orientations.Rotated(b.ID) {
		return b.Height, b.Width
	}
	return b.Width, b.Height
}

// Center returns the center of a block placed with its lower-left corner at
// (x, y) under the given orientations.
func Center(x, y float64, b floorplan.Block, orientations floorplan.Orientations) (cx, cy float64) {
	w, h := EffectiveDims(b, orientations)
	return x + w/2.0, y + h/2.0
}

// Snap rounds v to the nearest multiple of pitch, rounding halves away from
// zero.
func Snap(v, pitch float64) float64 {
	return math.Round(v/pitch) * pitch
}

// ClampInside clamps a lower-left coordinate into [0, Snap(die-w, pitch)]
// per axis. When die-w is not a multiple of pitch and the snap rounds up,
// the clamped rectangle extends past the far wall by less than half a pitch.
func ClampInside(x, y, w, h float64, die floorplan.Die, pitch float64) (float64, float64) {
	maxX := Snap(die.Width-w, pitch)
	maxY := Snap(die.Height-h, pitch)
	return math.Max(0, math.Min(x, maxX)), math.Max(0, math.Min(y, maxY))
}

// Overlaps reports whether two rectangles strictly overlap. Touching edges
// do not overlap.
func Overlaps(a, b Rect) bool {
	ow := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)
	oh := math.Min(a.Y+a.H, b.Y+b.H) - math.Max(a.Y, b.Y)
	return ow > 0 && oh > 0
}

// OverlapArea returns the area of the intersection of two rectangles, zero
// when they do not strictly overlap.
func OverlapArea(a, b Rect) float64 {
	ow := math.Min(a.X+a.W, b.X+b.W) - math.Max(a.X, b.X)
	oh := math.Min(a.Y+a.H, b.Y+b.H) - math.Max(a.Y, b.Y)
	if ow <= 0 || oh <= 0 {
		return 0
	}
	return ow * oh
}

// InsideDie reports whether a w×h rectangle at (x, y) lies fully inside the
// die. The test is exact; the ±0.01 tolerance belongs to the boundary
// penalty, not to legality checks.
func InsideDie(x, y, w, h float64, die floorplan.Die) bool {
	return x >= 0 && y >= 0 && x+w <= die.Width && y+h <= die.Height
}

// Package cost implements the multi-objective cost kernel: weighted HPWL
// wirelength, pairwise overlap, boundary violation, pairwise thermal
// coupling and wall attraction for high-power blocks.
//
// All functions iterate blocks in input order and aggressors in input order
// so that floating-point sums are reproducible run to run.
package cost

import (
	"math"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/engine/geometry"
)

// Wirelength computes the weighted half-perimeter wirelength over all nets.
// Nets with fewer than two placed members contribute nothing.
func Wirelength(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block, nets []floorplan.Net) float64 {

	byID := make(map[string]floorplan.Block, len(blocks))
	for _, b := range blocks {
		byID[b.ID] = b
	}

	total := 0.0
	for _, net := range nets {
		minX, maxX := math.Inf(1), math.Inf(-1)
		minY, maxY := math.Inf(1), math.Inf(-1)
		placed := 0

		for _, id := range net.Blocks {
			pt, ok := placement[id]
			if !ok {
				continue
			}
			b, ok := byID[id]
			if !ok {
				continue
			}
			cx, cy := geometry.Center(pt.X, pt.Y, b, orientations)
			minX = math.Min(minX, cx)
			maxX = math.Max(maxX, cx)
			minY = math.Min(minY, cy)
			maxY = math.Max(maxY, cy)
			placed++
		}

		if placed > 1 {
			total += ((maxX - minX) + (maxY - minY)) * net.Weight
		}
	}
	return total
}

// OverlapPenalty charges every strictly overlapping unordered block pair by
// its intersection area times OverlapWeight.
func OverlapPenalty(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block) float64 {

	rects := make([]geometry.Rect, len(blocks))
	present := make([]bool, len(blocks))
	for i, b := range blocks {
		pt, ok := placement[b.ID]
		if !ok {
			continue
		}
		w, h := geometry.EffectiveDims(b, orientations)
		rects[i] = geometry.Rect{X: pt.X, Y: pt.Y, W: w, H: h}
		present[i] = true
	}

	penalty := 0.0
	for i := range rects {
		if !present[i] {
			continue
		}
		for j := i + 1; j < len(rects); j++ {
			if !present[j] {
				continue
			}
			penalty += geometry.OverlapArea(rects[i], rects[j]) * OverlapWeight
		}
	}
	return penalty
}

// BoundaryPenalty charges a flat BoundaryPenaltyWeight for every placed
// block that leaves the die beyond a ±0.01 tolerance. The annealer clamps
// moves, so on its own states the gate fires only where pitch snapping
// rounds a block's far-wall bound outward (see geometry.ClampInside).
func BoundaryPenalty(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block, die floorplan.Die) float64 {

	penalty := 0.0
	for _, b := range blocks {
		pt, ok := placement[b.ID]
		if !ok {
			continue
		}
		w, h := geometry.EffectiveDims(b, orientations)
		if pt.X < -0.01 || pt.Y < -0.01 || pt.X+w > die.Width+0.01 || pt.Y+h > die.Height+0.01 {
			penalty += BoundaryPenaltyWeight
		}
	}
	return penalty
}

// ThermalPenalty models pairwise heat coupling. Every placed block is a
// victim; placed blocks with positive power are aggressors. A victim's
// temperature is its own power times ten plus the Gaussian-decayed power of
// every aggressor within ThermalCutoffDist; the violation above MaxSafeTemp
// is charged quadratically.
func ThermalPenalty(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block) float64 {

	type source struct {
		id     string
		power  float64
		cx, cy float64
	}

	// Aggressors in block input order keeps the inner sum deterministic.
	aggressors := make([]source, 0, len(blocks))
	for _, b := range blocks {
		pt, ok := placement[b.ID]
		if !ok || b.Power <= 0 {
			continue
		}
		cx, cy := geometry.Center(pt.X, pt.Y, b, orientations)
		aggressors = append(aggressors, source{id: b.ID, power: b.Power, cx: cx, cy: cy})
	}
	if len(aggressors) == 0 {
		return 0.0
	}

	manhattanCutoff := ThermalCutoffDist * math.Sqrt2
	cutoffSq := ThermalCutoffDist * ThermalCutoffDist

	total := 0.0
	for _, victim := range blocks {
		pt, ok := placement[victim.ID]
		if !ok {
			continue
		}
		vx, vy := geometry.Center(pt.X, pt.Y, victim, orientations)

		temp := victim.Power * 10.0
		for _, a := range aggressors {
			if a.id == victim.ID {
				continue
			}
			// Manhattan distance bounds Euclidean distance from above, so
			// the cheap test can reject before the exp.
			if math.Abs(vx-a.cx)+math.Abs(vy-a.cy) > manhattanCutoff {
				continue
			}
			dx, dy := vx-a.cx, vy-a.cy
			distSq := dx*dx + dy*dy
			if distSq > cutoffSq {
				continue
			}
			temp += a.power * math.Exp(-distSq/ThermalSpreadK)
		}

		if temp > MaxSafeTemp {
			violation := temp - MaxSafeTemp
			total += violation * violation
		}
	}
	return total
}

// CenterPenalty pushes high-power blocks toward the periphery. A block at
// the die center scores 1, at a corner 0; the score is weighted by block
// power and scaled by CenterPenaltyWeight.
func CenterPenalty(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block, die floorplan.Die) float64 {

	cx, cy := die.Center()
	maxDist := die.MaxCenterDist()

	total := 0.0
	for _, b := range blocks {
		pt, ok := placement[b.ID]
		if !ok {
			continue
		}
		bx, by := geometry.Center(pt.X, pt.Y, b, orientations)
		dist := math.Hypot(bx-cx, by-cy)
		total += (1.0 - dist/maxDist) * b.Power
	}
	return total * CenterPenaltyWeight
}

// Total evaluates the full multi-objective cost: the sum of the five
// component terms.
func Total(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block, nets []floorplan.Net, die floorplan.Die) float64 {

	return Wirelength(placement, orientations, blocks, nets) +
		OverlapPenalty(placement, orientations, blocks) +
		BoundaryPenalty(placement, orientations, blocks, die) +
		ThermalPenalty(placement, orientations, blocks) +
		CenterPenalty(placement, orientations, blocks, die)
}

// Breakdown evaluates all five terms separately alongside their sum.
func Breakdown(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block, nets []floorplan.Net, die floorplan.Die) floorplan.CostBreakdown {

	bd := floorplan.CostBreakdown{
		Wirelength: Wirelength(placement, orientations, blocks, nets),
		Overlap:    OverlapPenalty(placement, orientations, blocks),
		Boundary:   BoundaryPenalty(placement, orientations, blocks, die),
		Thermal:    ThermalPenalty(placement, orientations, blocks),
		Center:     CenterPenalty(placement, orientations, blocks, die),
	}
	bd.Total = bd.Wirelength + bd.Overlap + bd.Boundary + bd.Thermal + bd.Center
	return bd
}

// Package baseline implements the smart wall-aware constructive placer. It
// produces a legal, strictly overlap-free starting layout for the annealer,
// or reports the die as too small. The constructor is fully deterministic:
// no RNG, no cost-kernel calls, stable tie-breaking everywhere.
package baseline

import (
	"math"
	"sort"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/engine/geometry"
)

// Candidate scoring weights. These are deliberately independent of the cost
// kernel: the constructor optimizes for wall hugging, short local wires and
// thermal separation, not for the annealer's objective.
const (
	// AlphaWall scales the distance to the nearest die wall.
	AlphaWall = 1000.0
	// BetaWire scales the connectivity-weighted Manhattan pull toward
	// already-placed neighbors.
	BetaWire = 5.0
	// GammaThermal scales the pairwise power coupling between the candidate
	// and already-placed hot blocks.
	GammaThermal = 5000.0
)

// rasterStep is the fallback grid-search pitch.
const rasterStep = 1.0

type placedRect struct {
	x, y, w, h float64
	power      float64
	id         string
}

// Place constructs a legal baseline placement. Blocks are placed one at a
// time in decreasing inflexibility order; each block lands on the best
// wall-aware candidate, or on the first free raster position when no smart
// candidate is legal. The boolean result is false when some block cannot be
// placed at all, in which case no partial placement is returned.
func Place(blocks []floorplan.Block, die floorplan.Die, nets []floorplan.Net) (floorplan.Placement, bool) {
	if len(blocks) == 0 {
		return floorplan.Placement{}, true
	}

	adj := NewAdjacency(blocks, nets)
	order := sortByInflexibility(blocks, adj)

	placement := make(floorplan.Placement, len(blocks))
	placed := make([]placedRect, 0, len(blocks))

	for _, b := range order {
		x, y, ok := bestCandidate(b, die, placed, adj)
		if !ok {
			x, y, ok = rasterSearch(b, die, placed)
		}
		if !ok {
			return nil, false
		}
		placement[b.ID] = floorplan.Point{X: x, Y: y}
		placed = append(placed, placedRect{x: x, y: y, w: b.Width, h: b.Height, power: b.Power, id: b.ID})
	}
	return placement, true
}

// inflexibility ranks blocks by how hard they are to place late: big area,
// heavy connectivity, high power, and long thin shapes all raise the score.
func inflexibility(b floorplan.Block, adj *Adjacency) float64 {
	return b.Area() + adj.Connectivity(b.ID)*10.0 + b.Power*10.0 + b.LongestSide()*10.0
}

// sortByInflexibility orders blocks by descending score; input order breaks
// ties.
func sortByInflexibility(blocks []floorplan.Block, adj *Adjacency) []floorplan.Block {
	order := make([]floorplan.Block, len(blocks))
	copy(order, blocks)
	sort.SliceStable(order, func(i, j int) bool {
		return inflexibility(order[i], adj) > inflexibility(order[j], adj)
	})
	return order
}

// candidates generates the smart anchor set for a block: the four die
// corners plus, for every placed rectangle, the four abutting positions to
// its right, top, left and bottom.
func candidates(b floorplan.Block, die floorplan.Die, placed []placedRect) []floorplan.Point {
	w, h := b.Width, b.Height
	cands := []floorplan.Point{
		{X: 0, Y: 0},
		{X: die.Width - w, Y: 0},
		{X: 0, Y: die.Height - h},
		{X: die.Width - w, Y: die.Height - h},
	}
	for _, p := range placed {
		cands = append(cands,
			floorplan.Point{X: p.x + p.w, Y: p.y}, // right
			floorplan.Point{X: p.x, Y: p.y + p.h}, // top
			floorplan.Point{X: p.x - w, Y: p.y},   // left
			floorplan.Point{X: p.x, Y: p.y - h},   // bottom
		)
	}
	return cands
}

// legal reports whether the block can sit at (x, y) without leaving the die
// or strictly overlapping any placed rectangle.
func legal(x, y, w, h float64, die floorplan.Die, placed []placedRect) bool {
	if !geometry.InsideDie(x, y, w, h, die) {
		return false
	}
	r := geometry.Rect{X: x, Y: y, W: w, H: h}
	for _, p := range placed {
		if geometry.Overlaps(r, geometry.Rect{X: p.x, Y: p.y, W: p.w, H: p.h}) {
			return false
		}
	}
	return true
}

// candidateScore evaluates one legal candidate: wall hugging, wire pull and
// thermal push.
func candidateScore(b floorplan.Block, x, y float64, die floorplan.Die,
	placed []placedRect, adj *Adjacency) float64 {

	w, h := b.Width, b.Height

	wallDist := math.Min(
		math.Min(x, die.Width-(x+w)),
		math.Min(y, die.Height-(y+h)),
	)
	wallCost := wallDist * AlphaWall

	cx, cy := x+w/2.0, y+h/2.0
	wireCost := 0.0
	thermalCost := 0.0
	for _, p := range placed {
		px, py := p.x+p.w/2.0, p.y+p.h/2.0

		if weight := adj.Weight(b.ID, p.id); weight > 0 {
			dist := math.Max(math.Abs(cx-px)+math.Abs(cy-py), 1.0)
			wireCost += dist * weight
		}

		if b.Power > 0 && p.power > 0 {
			dx, dy := cx-px, cy-py
			distSq := math.Max(dx*dx+dy*dy, 1.0)
			thermalCost += (b.Power * p.power) / distSq
		}
	}

	return wallCost + wireCost*BetaWire + thermalCost*GammaThermal
}

// bestCandidate scores every legal smart candidate and returns the cheapest
// one; ties go to the candidate with the smaller x+y.
func bestCandidate(b floorplan.Block, die floorplan.Die, placed []placedRect,
	adj *Adjacency) (float64, float64, bool) {

	bestX, bestY := 0.0, 0.0
	bestScore := math.Inf(1)
	found := false

	for _, c := range candidates(b, die, placed) {
		if !legal(c.X, c.Y, b.Width, b.Height, die, placed) {
			continue
		}
		score := candidateScore(b, c.X, c.Y, die, placed, adj)
		if !found || score < bestScore ||
			(score == bestScore && c.X+c.Y < bestX+bestY) {
			bestX, bestY = c.X, c.Y
			bestScore = score
			found = true
		}
	}
	return bestX, bestY, found
}

// rasterSearch scans the die row by row at unit pitch and returns the first
// position free of overlaps. Boundary legality holds by construction of the
// scan range.
func rasterSearch(b floorplan.Block, die floorplan.Die, placed []placedRect) (float64, float64, bool) {
	w, h := b.Width, b.Height
	for y := 0.0; y <= die.Height-h; y += rasterStep {
		for x := 0.0; x <= die.Width-w; x += rasterStep {
			r := geometry.Rect{X: x, Y: y, W: w, H: h}
			free := true
			for _, p := range placed {
				if geometry.Overlaps(r, geometry.Rect{X: p.x, Y: p.y, W: p.w, H: p.h}) {
					free = false
					break
				}
			}
			if free {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

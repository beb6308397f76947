package anneal

import (
	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/engine/agent"
	"github.com/floorplan-project/placement-api/internal/engine/geometry"
)

// applyMove mutates the candidate state in place with the chosen operator.
// Every operator leaves the touched blocks snapped to the pitch grid and
// clamped with geometry.ClampInside under their effective dimensions.
func (an *Annealer) applyMove(action agent.Action, placement floorplan.Placement,
	orientations floorplan.Orientations, scale float64) {

	if len(an.blocks) == 0 {
		return
	}

	switch action {
	case agent.ActionDisplace:
		an.displace(placement, orientations, scale)
	case agent.ActionSwap:
		an.swap(placement, orientations)
	case agent.ActionRotate:
		an.rotate(placement, orientations)
	}
}

// displace moves one random block by a uniform offset in [-scale, +scale]
// per axis.
func (an *Annealer) displace(placement floorplan.Placement,
	orientations floorplan.Orientations, scale float64) {

	b := an.blocks[an.rng.Intn(len(an.blocks))]
	pt := placement[b.ID]

	x := pt.X + (an.rng.Float64()*2-1)*scale
	y := pt.Y + (an.rng.Float64()*2-1)*scale

	pitch := an.config.PlacementPitch
	x = geometry.Snap(x, pitch)
	y = geometry.Snap(y, pitch)

	w, h := geometry.EffectiveDims(b, orientations)
	x, y = geometry.ClampInside(x, y, w, h, an.die, pitch)
	placement[b.ID] = floorplan.Point{X: x, Y: y}
}

// swap exchanges the coordinates of two distinct random blocks, clamping
// each under its own effective dimensions. With fewer than two blocks the
// move silently does nothing.
func (an *Annealer) swap(placement floorplan.Placement, orientations floorplan.Orientations) {
	if len(an.blocks) < 2 {
		return
	}
	i := an.rng.Intn(len(an.blocks))
	j := an.rng.Intn(len(an.blocks) - 1)
	if j >= i {
		j++
	}
	b1, b2 := an.blocks[i], an.blocks[j]

	p1, p2 := placement[b1.ID], placement[b2.ID]
	pitch := an.config.PlacementPitch

	w1, h1 := geometry.EffectiveDims(b1, orientations)
	x1, y1 := geometry.ClampInside(p2.X, p2.Y, w1, h1, an.die, pitch)
	placement[b1.ID] = floorplan.Point{X: x1, Y: y1}

	w2, h2 := geometry.EffectiveDims(b2, orientations)
	x2, y2 := geometry.ClampInside(p1.X, p1.Y, w2, h2, an.die, pitch)
	placement[b2.ID] = floorplan.Point{X: x2, Y: y2}
}

// rotate flips one random block's orientation and re-clamps its position
// under the new effective dimensions.
func (an *Annealer) rotate(placement floorplan.Placement, orientations floorplan.Orientations) {
	b := an.blocks[an.rng.Intn(len(an.blocks))]
	orientations[b.ID] = !orientations[b.ID]

	pt := placement[b.ID]
	w, h := geometry.EffectiveDims(b, orientations)
	x, y := geometry.ClampInside(pt.X, pt.Y, w, h, an.die, an.config.PlacementPitch)
	placement[b.ID] = floorplan.Point{X: x, Y: y}
}

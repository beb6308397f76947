package baseline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
	"github.com/floorplan-project/placement-api/internal/engine/geometry"
)

func block(id string, w, h, power float64) floorplan.Block {
	return floorplan.Block{ID: id, Width: w, Height: h, Power: power}
}

// assertLegal checks P1: no strict overlaps and every rectangle inside the
// die. The baseline never rotates, so declared dimensions apply.
func assertLegal(t *testing.T, placement floorplan.Placement, blocks []floorplan.Block, die floorplan.Die) {
	t.Helper()
	for i, a := range blocks {
		pa, ok := placement[a.ID]
		require.True(t, ok, "block %s missing from placement", a.ID)
		assert.True(t, geometry.InsideDie(pa.X, pa.Y, a.Width, a.Height, die),
			"block %s leaves the die at (%v,%v)", a.ID, pa.X, pa.Y)

		ra := geometry.Rect{X: pa.X, Y: pa.Y, W: a.Width, H: a.Height}
		for _, b := range blocks[i+1:] {
			pb := placement[b.ID]
			rb := geometry.Rect{X: pb.X, Y: pb.Y, W: b.Width, H: b.Height}
			assert.False(t, geometry.Overlaps(ra, rb), "blocks %s and %s overlap", a.ID, b.ID)
		}
	}
}

func TestAdjacency(t *testing.T) {
	blocks := []floorplan.Block{block("a", 1, 1, 0), block("b", 1, 1, 0), block("c", 1, 1, 0)}
	nets := []floorplan.Net{
		{Name: "n1", Blocks: []string{"a", "b"}, Weight: 2},
		{Name: "n2", Blocks: []string{"a", "b", "c"}, Weight: 1},
		{Name: "dangling", Blocks: []string{"a", "ghost"}, Weight: 9},
	}

	adj := NewAdjacency(blocks, nets)

	assert.Equal(t, 3.0, adj.Weight("a", "b"))
	assert.Equal(t, 3.0, adj.Weight("b", "a"))
	assert.Equal(t, 1.0, adj.Weight("a", "c"))
	assert.Equal(t, 1.0, adj.Weight("b", "c"))
	assert.Zero(t, adj.Weight("a", "ghost"))

	assert.Equal(t, 4.0, adj.Connectivity("a"))
	assert.Equal(t, 2.0, adj.Connectivity("c"))
}

func TestPlaceSingleBlock(t *testing.T) {
	blocks := []floorplan.Block{block("a", 10, 10, 0)}
	die := floorplan.Die{Width: 100, Height: 100}

	placement, ok := Place(blocks, die, nil)
	require.True(t, ok)

	// All four corners tie at zero; the smaller x+y corner wins.
	assert.Equal(t, floorplan.Point{X: 0, Y: 0}, placement["a"])
}

func TestPlaceTwoConnectedBlocks(t *testing.T) {
	// Scenario S2: the second block lands abutting the first.
	blocks := []floorplan.Block{block("a", 10, 10, 0), block("b", 10, 10, 0)}
	nets := []floorplan.Net{{Name: "n", Blocks: []string{"a", "b"}, Weight: 1}}
	die := floorplan.Die{Width: 100, Height: 100}

	placement, ok := Place(blocks, die, nets)
	require.True(t, ok)
	assertLegal(t, placement, blocks, die)

	assert.Equal(t, floorplan.Point{X: 0, Y: 0}, placement["a"])

	// b abuts a on its right or top anchor; both tie on score, and both
	// have the same x+y, so the first-seen anchor wins.
	b := placement["b"]
	assert.Contains(t, []floorplan.Point{{X: 10, Y: 0}, {X: 0, Y: 10}}, b)
}

func TestPlaceInfeasibleDie(t *testing.T) {
	// Scenario S3: three 60×60 blocks cannot share a 100×100 die.
	blocks := []floorplan.Block{
		block("a", 60, 60, 0),
		block("b", 60, 60, 0),
		block("c", 60, 60, 0),
	}
	die := floorplan.Die{Width: 100, Height: 100}

	placement, ok := Place(blocks, die, nil)
	assert.False(t, ok)
	assert.Nil(t, placement)
}

func TestPlaceHotBlocksSeparate(t *testing.T) {
	// The thermal term of the candidate score pushes two hot blocks to
	// opposite ends of the die.
	blocks := []floorplan.Block{block("h1", 10, 10, 50), block("h2", 10, 10, 50)}
	die := floorplan.Die{Width: 100, Height: 100}

	placement, ok := Place(blocks, die, nil)
	require.True(t, ok)
	assertLegal(t, placement, blocks, die)

	p1, p2 := placement["h1"], placement["h2"]
	dx := (p1.X + 5) - (p2.X + 5)
	dy := (p1.Y + 5) - (p2.Y + 5)
	assert.Greater(t, dx*dx+dy*dy, 50.0*50.0, "hot blocks placed too close")
}

func TestPlaceManyBlocksLegality(t *testing.T) {
	// P1 on a denser mix: long peripheral strips plus square macros.
	blocks := []floorplan.Block{
		block("strip1", 80, 5, 10),
		block("strip2", 5, 80, 10),
		block("cpu", 30, 30, 20),
		block("mem1", 20, 25, 5),
		block("mem2", 20, 25, 5),
		block("io", 10, 10, 0),
		block("pll", 8, 12, 3),
	}
	nets := []floorplan.Net{
		{Name: "bus", Blocks: []string{"cpu", "mem1", "mem2"}, Weight: 3},
		{Name: "ctl", Blocks: []string{"cpu", "io", "pll"}, Weight: 1},
	}
	die := floorplan.Die{Width: 120, Height: 120}

	placement, ok := Place(blocks, die, nets)
	require.True(t, ok)
	assertLegal(t, placement, blocks, die)
}

func TestPlaceDeterminism(t *testing.T) {
	blocks := []floorplan.Block{
		block("a", 20, 10, 5),
		block("b", 10, 20, 5),
		block("c", 15, 15, 0),
	}
	nets := []floorplan.Net{{Name: "n", Blocks: []string{"a", "b", "c"}, Weight: 2}}
	die := floorplan.Die{Width: 80, Height: 80}

	p1, ok1 := Place(blocks, die, nets)
	p2, ok2 := Place(blocks, die, nets)

	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, p1, p2)
}

func TestPlaceTightDie(t *testing.T) {
	// A die barely larger than the blocks leaves almost no slack; the
	// result must still be legal.
	blocks := []floorplan.Block{
		block("a", 6, 6, 0),
		block("b", 6, 6, 0),
		block("c", 6, 6, 0),
		block("d", 6, 6, 0),
	}
	die := floorplan.Die{Width: 13, Height: 13}

	placement, ok := Place(blocks, die, nil)
	require.True(t, ok)
	assertLegal(t, placement, blocks, die)
}

func TestInflexibilityOrdering(t *testing.T) {
	big := block("big", 50, 50, 0)
	small := block("small", 5, 5, 0)
	adj := NewAdjacency([]floorplan.Block{big, small}, nil)

	assert.Greater(t, inflexibility(big, adj), inflexibility(small, adj))

	// Connectivity raises the score even for equal shapes.
	a, b := block("a", 10, 10, 0), block("b", 10, 10, 0)
	adj2 := NewAdjacency([]floorplan.Block{a, b},
		[]floorplan.Net{{Name: "n", Blocks: []string{"a", "b"}, Weight: 4}})
	assert.Equal(t, inflexibility(a, adj2), inflexibility(b, adj2))
	assert.Greater(t, inflexibility(a, adj2), inflexibility(a, adj))
}

func TestPlaceEmptyBlockSet(t *testing.T) {
	placement, ok := Place(nil, floorplan.Die{Width: 10, Height: 10}, nil)
	assert.True(t, ok)
	assert.Empty(t, placement)
}

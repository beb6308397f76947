package baseline

import (
	"gonum.org/v1/gonum/mat"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// Adjacency is a symmetric block-to-block connectivity matrix accumulated
// from net weights. Rows and columns follow block input order, which keeps
// every derived sum deterministic.
type Adjacency struct {
	index   map[string]int
	ids     []string
	weights *mat.Dense
}

// NewAdjacency accumulates net weights over every unordered block pair that
// appears together in a net. Net members outside the block set are ignored.
func NewAdjacency(blocks []floorplan.Block, nets []floorplan.Net) *Adjacency {
	n := len(blocks)
	a := &Adjacency{
		index:   make(map[string]int, n),
		ids:     make([]string, n),
		weights: mat.NewDense(maxInt(n, 1), maxInt(n, 1), nil),
	}
	for i, b := range blocks {
		a.index[b.ID] = i
		a.ids[i] = b.ID
	}

	for _, net := range nets {
		members := make([]int, 0, len(net.Blocks))
		for _, id := range net.Blocks {
			if idx, ok := a.index[id]; ok {
				members = append(members, idx)
			}
		}
		for i := 0; i < len(members); i++ {
			for j := i + 1; j < len(members); j++ {
				u, v := members[i], members[j]
				if u == v {
					continue
				}
				a.weights.Set(u, v, a.weights.At(u, v)+net.Weight)
				a.weights.Set(v, u, a.weights.At(v, u)+net.Weight)
			}
		}
	}
	return a
}

// Weight returns the accumulated connectivity between two blocks.
func (a *Adjacency) Weight(u, v string) float64 {
	ui, ok := a.index[u]
	if !ok {
		return 0
	}
	vi, ok := a.index[v]
	if !ok {
		return 0
	}
	return a.weights.At(ui, vi)
}

// Connectivity returns the total connectivity of one block: the sum of its
// adjacency row.
func (a *Adjacency) Connectivity(id string) float64 {
	i, ok := a.index[id]
	if !ok {
		return 0
	}
	row := a.weights.RawRowView(i)
	total := 0.0
	for _, w := range row[:len(a.ids)] {
		total += w
	}
	return total
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

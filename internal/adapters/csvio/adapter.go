package csvio

import (
	"io"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// Adapter exposes the CSV loaders behind the design-adapter interface.
type Adapter struct{}

// NewAdapter creates a CSV design adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// ParseBlocks reads a block table from CSV.
func (a *Adapter) ParseBlocks(r io.Reader) ([]floorplan.Block, error) {
	return LoadBlocks(r)
}

// ParseNets reads a net list from CSV.
func (a *Adapter) ParseNets(r io.Reader) ([]floorplan.Net, error) {
	return LoadNets(r)
}

// Format returns the format identifier.
func (a *Adapter) Format() string {
	return "csv"
}

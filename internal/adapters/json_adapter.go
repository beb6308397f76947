package adapters

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// JSONAdapter parses designs uploaded as JSON arrays of block and net
// objects, the same shapes the API accepts inline.
type JSONAdapter struct{}

// NewJSONAdapter creates a JSON design adapter.
func NewJSONAdapter() *JSONAdapter {
	return &JSONAdapter{}
}

// ParseBlocks reads a JSON array of blocks.
func (a *JSONAdapter) ParseBlocks(r io.Reader) ([]floorplan.Block, error) {
	var blocks []floorplan.Block
	if err := json.NewDecoder(r).Decode(&blocks); err != nil {
		return nil, fmt.Errorf("decoding blocks JSON: %w", err)
	}
	if err := floorplan.ValidateBlocks(blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ParseNets reads a JSON array of nets.
func (a *JSONAdapter) ParseNets(r io.Reader) ([]floorplan.Net, error) {
	var nets []floorplan.Net
	if err := json.NewDecoder(r).Decode(&nets); err != nil {
		return nil, fmt.Errorf("decoding nets JSON: %w", err)
	}
	if err := floorplan.ValidateNets(nets); err != nil {
		return nil, err
	}
	return nets, nil
}

// Format returns the format identifier.
func (a *JSONAdapter) Format() string {
	return "json"
}

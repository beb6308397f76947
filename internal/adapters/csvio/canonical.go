package csvio

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// Role-table compilation. Design entry tools describe blocks by role and
// connectivity class rather than physical size; compilation assigns each
// role its base footprint and grows it with the block's connectivity before
// the canonical loaders ever see it.

// roleBaseSizes maps a block role to its base width and height. Unknown
// roles fall back to the smallest footprint.
var roleBaseSizes = map[string][2]float64{
	"CPU":         {10, 10},
	"Accelerator": {10, 10},
	"Cache":       {8, 8},
	"Memory":      {8, 8},
	"IO":          {6, 6},
	"Network":     {6, 6},
	"DSP":         {7, 7},
	"Display":     {7, 7},
}

// defaultRoleSize is the footprint for roles outside the table.
var defaultRoleSize = [2]float64{6, 6}

// connectivityGrowth is the per-connectivity-class footprint scale step:
// scale = 1 + connectivityGrowth*(connectivity-1).
const connectivityGrowth = 0.15

// roleColumns is the header set that marks a role table as opposed to a
// canonical block table.
var roleColumns = []string{"block_id", "role", "connectivity", "power", "heat"}

// IsRoleTable reports whether a CSV header row describes a role table.
func IsRoleTable(header []string) bool {
	seen := make(map[string]bool, len(header))
	for _, name := range header {
		seen[strings.ToLower(strings.TrimSpace(name))] = true
	}
	for _, name := range roleColumns {
		if !seen[name] {
			return false
		}
	}
	return true
}

// CompileBlocks compiles a role-table CSV (block_id, role, connectivity,
// power, heat) into canonical blocks. Footprints come from the role base
// size scaled by connectivity and rounded to two decimals.
func CompileBlocks(r io.Reader) ([]floorplan.Block, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("reading role table CSV: %w", err)
	}

	cols, err := columnIndex(header, roleColumns)
	if err != nil {
		return nil, fmt.Errorf("role table CSV: %w", err)
	}

	blocks := make([]floorplan.Block, 0, len(rows))
	for i, row := range rows {
		connectivity, err := parseInt(row[cols["connectivity"]], "connectivity", i)
		if err != nil {
			return nil, err
		}
		power, err := parseFloat(row[cols["power"]], "power", i)
		if err != nil {
			return nil, err
		}
		heat, err := parseFloat(row[cols["heat"]], "heat", i)
		if err != nil {
			return nil, err
		}

		role := strings.TrimSpace(row[cols["role"]])
		base, ok := roleBaseSizes[role]
		if !ok {
			base = defaultRoleSize
		}
		scale := 1.0 + connectivityGrowth*float64(connectivity-1)

		b, err := floorplan.NewBlock(
			strings.TrimSpace(row[cols["block_id"]]),
			round2(base[0]*scale),
			round2(base[1]*scale),
			power, heat)
		if err != nil {
			return nil, fmt.Errorf("role table CSV row %d: %w", i+2, err)
		}
		blocks = append(blocks, b)
	}

	if err := floorplan.ValidateBlocks(blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// LoadOrCompileBlocks sniffs the header and routes a block upload to the
// canonical loader or the role-table compiler.
func LoadOrCompileBlocks(data []byte) ([]floorplan.Block, error) {
	header, _, err := readTable(strings.NewReader(string(data)))
	if err != nil {
		return nil, fmt.Errorf("reading blocks CSV: %w", err)
	}
	if IsRoleTable(header) {
		return CompileBlocks(strings.NewReader(string(data)))
	}
	return LoadBlocks(strings.NewReader(string(data)))
}

// round2 rounds to two decimals, the precision of compiled footprints.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func parseInt(s, column string, row int) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("row %d: column %q: %w", row+2, column, err)
	}
	return v, nil
}

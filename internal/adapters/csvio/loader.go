// Package csvio converts CSV design input into the core models and
// serializes placements back out. It is the boundary between files and the
// optimizer; the engine itself never touches CSV.
//
// The expected column sets are:
//
//	blocks: id, width, height, power, heat   (extra columns are ignored)
//	nets:   name, blocks, weight             (blocks is a comma-separated id list)
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// LoadBlocks reads a blocks CSV. Column order is free; a header row is
// required. Unknown columns such as "role" are ignored.
func LoadBlocks(r io.Reader) ([]floorplan.Block, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("reading blocks CSV: %w", err)
	}

	required := []string{"id", "width", "height", "power", "heat"}
	cols, err := columnIndex(header, required)
	if err != nil {
		return nil, fmt.Errorf("blocks CSV: %w", err)
	}

	blocks := make([]floorplan.Block, 0, len(rows))
	for i, row := range rows {
		width, err := parseFloat(row[cols["width"]], "width", i)
		if err != nil {
			return nil, err
		}
		height, err := parseFloat(row[cols["height"]], "height", i)
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

		b, err := floorplan.NewBlock(strings.TrimSpace(row[cols["id"]]), width, height, power, heat)
		if err != nil {
			return nil, fmt.Errorf("blocks CSV row %d: %w", i+2, err)
		}
		blocks = append(blocks, b)
	}

	if err := floorplan.ValidateBlocks(blocks); err != nil {
		return nil, err
	}
	return blocks, nil
}

// LoadNets reads a nets CSV. The blocks field is a comma-separated
// identifier list inside one (usually quoted) CSV cell.
func LoadNets(r io.Reader) ([]floorplan.Net, error) {
	header, rows, err := readTable(r)
	if err != nil {
		return nil, fmt.Errorf("reading nets CSV: %w", err)
	}

	required := []string{"name", "blocks", "weight"}
	cols, err := columnIndex(header, required)
	if err != nil {
		return nil, fmt.Errorf("nets CSV: %w", err)
	}

	nets := make([]floorplan.Net, 0, len(rows))
	for i, row := range rows {
		weight, err := parseFloat(row[cols["weight"]], "weight", i)
		if err != nil {
			return nil, err
		}

		ids := splitIDList(row[cols["blocks"]])
		n, err := floorplan.NewNet(strings.TrimSpace(row[cols["name"]]), ids, weight)
		if err != nil {
			return nil, fmt.Errorf("nets CSV row %d: %w", i+2, err)
		}
		nets = append(nets, n)
	}
	return nets, nil
}

// DieFromParams builds the die from two positive dimensions, typically
// taken from UI parameters rather than a file.
func DieFromParams(width, height float64) (floorplan.Die, error) {
	return floorplan.NewDie(width, height)
}

// readTable reads all CSV records and splits off the header row.
func readTable(r io.Reader) ([]string, [][]string, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV input")
	}
	return records[0], records[1:], nil
}

// columnIndex maps required column names to positions, case-insensitively.
func columnIndex(header, required []string) (map[string]int, error) {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range required {
		if _, ok := cols[name]; !ok {
			return nil, fmt.Errorf("missing required column %q", name)
		}
	}
	return cols, nil
}

func parseFloat(s, column string, row int) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("row %d: column %q: %w", row+2, column, err)
	}
	return v, nil
}

// splitIDList splits a comma-separated identifier list, dropping empties.
func splitIDList(s string) []string {
	parts := strings.Split(s, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if id := strings.TrimSpace(p); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

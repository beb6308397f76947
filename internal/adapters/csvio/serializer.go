package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

// PlacementRecord is one display-ready placement row. Records follow block
// input order so exports are stable.
type PlacementRecord struct {
	ID      string  `json:"id"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Rotated bool    `json:"rotated"`
	Power   float64 `json:"power"`
}

// PlacementRecords converts a placement into ordered display records using
// each block's effective dimensions.
func PlacementRecords(placement floorplan.Placement, orientations floorplan.Orientations,
	blocks []floorplan.Block) []PlacementRecord {

	records := make([]PlacementRecord, 0, len(blocks))
	for _, b := range blocks {
		pt, ok := placement[b.ID]
		if !ok {
			continue
		}
		w, h := b.Width, b.Height
		if orientations.Rotated(b.ID) {
			w, h = h, w
		}
		records = append(records, PlacementRecord{
			ID:      b.ID,
			X:       pt.X,
			Y:       pt.Y,
			Width:   w,
			Height:  h,
			Rotated: orientations.Rotated(b.ID),
			Power:   b.Power,
		})
	}
	return records
}

// WritePlacementCSV exports a placement as CSV with a header row.
func WritePlacementCSV(w io.Writer, placement floorplan.Placement,
	orientations floorplan.Orientations, blocks []floorplan.Block) error {

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "x", "y", "width", "height", "rotated", "power"}); err != nil {
		return fmt.Errorf("writing placement CSV header: %w", err)
	}
	for _, rec := range PlacementRecords(placement, orientations, blocks) {
		row := []string{
			rec.ID,
			formatFloat(rec.X),
			formatFloat(rec.Y),
			formatFloat(rec.Width),
			formatFloat(rec.Height),
			strconv.FormatBool(rec.Rotated),
			formatFloat(rec.Power),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing placement CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

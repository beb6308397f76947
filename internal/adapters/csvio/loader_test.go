package csvio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/floorplan-project/placement-api/internal/domain/floorplan"
)

func TestLoadBlocks(t *testing.T) {
	t.Run("canonical_columns", func(t *testing.T) {
		input := "id,width,height,power,heat\ncpu,30,20,15,8\nmem,20,25,5,2\n"

		blocks, err := LoadBlocks(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, blocks, 2)

		assert.Equal(t, "cpu", blocks[0].ID)
		assert.Equal(t, 30.0, blocks[0].Width)
		assert.Equal(t, 20.0, blocks[0].Height)
		assert.Equal(t, 15.0, blocks[0].Power)
		assert.Equal(t, 8.0, blocks[0].Heat)
	})

	t.Run("extra_columns_ignored", func(t *testing.T) {
		input := "id,role,width,height,power,heat\nio,peripheral,10,10,0,0\n"

		blocks, err := LoadBlocks(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, blocks, 1)
		assert.Equal(t, "io", blocks[0].ID)
	})

	t.Run("missing_column_fails", func(t *testing.T) {
		input := "id,width,height\ncpu,30,20\n"

		_, err := LoadBlocks(strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "power")
	})

	t.Run("invalid_dimension_fails", func(t *testing.T) {
		input := "id,width,height,power,heat\ncpu,-30,20,15,8\n"

		_, err := LoadBlocks(strings.NewReader(input))
		require.Error(t, err)

		var perr *floorplan.PlacementError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, floorplan.ErrorInvalidBlock, perr.ErrorType)
	})

	t.Run("duplicate_id_fails", func(t *testing.T) {
		input := "id,width,height,power,heat\ncpu,30,20,15,8\ncpu,10,10,0,0\n"

		_, err := LoadBlocks(strings.NewReader(input))
		require.Error(t, err)
	})

	t.Run("empty_input_fails", func(t *testing.T) {
		_, err := LoadBlocks(strings.NewReader(""))
		require.Error(t, err)
	})
}

func TestLoadNets(t *testing.T) {
	t.Run("quoted_id_list", func(t *testing.T) {
		input := "name,blocks,weight\nbus,\"cpu,mem,io\",3\nclk,\"cpu,pll\",1.5\n"

		nets, err := LoadNets(strings.NewReader(input))
		require.NoError(t, err)
		require.Len(t, nets, 2)

		assert.Equal(t, "bus", nets[0].Name)
		assert.Equal(t, []string{"cpu", "mem", "io"}, nets[0].Blocks)
		assert.Equal(t, 3.0, nets[0].Weight)
		assert.Equal(t, 1.5, nets[1].Weight)
	})

	t.Run("whitespace_in_list_trimmed", func(t *testing.T) {
		input := "name,blocks,weight\nbus,\"cpu, mem , io\",1\n"

		nets, err := LoadNets(strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, []string{"cpu", "mem", "io"}, nets[0].Blocks)
	})

	t.Run("negative_weight_fails", func(t *testing.T) {
		input := "name,blocks,weight\nbus,\"cpu,mem\",-1\n"

		_, err := LoadNets(strings.NewReader(input))
		require.Error(t, err)

		var perr *floorplan.PlacementError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, floorplan.ErrorInvalidNet, perr.ErrorType)
	})

	t.Run("empty_block_list_fails", func(t *testing.T) {
		input := "name,blocks,weight\nbus,\"\",1\n"

		_, err := LoadNets(strings.NewReader(input))
		require.Error(t, err)
	})
}

func TestDieFromParams(t *testing.T) {
	die, err := DieFromParams(120, 80)
	require.NoError(t, err)
	assert.Equal(t, 120.0, die.Width)
	assert.Equal(t, 80.0, die.Height)

	_, err = DieFromParams(0, 80)
	require.Error(t, err)
}

func TestWritePlacementCSV(t *testing.T) {
	blocks := []floorplan.Block{
		{ID: "cpu", Width: 30, Height: 20, Power: 15},
		{ID: "mem", Width: 20, Height: 25, Power: 5},
	}
	placement := floorplan.Placement{
		"cpu": {X: 0, Y: 0},
		"mem": {X: 30, Y: 0},
	}
	orient := floorplan.Orientations{"mem": true}

	var buf bytes.Buffer
	require.NoError(t, WritePlacementCSV(&buf, placement, orient, blocks))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,x,y,width,height,rotated,power", lines[0])
	assert.Equal(t, "cpu,0,0,30,20,false,15", lines[1])
	// Rotated block exports swapped dimensions.
	assert.Equal(t, "mem,30,0,25,20,true,5", lines[2])
}

func TestPlacementRecordsFollowBlockOrder(t *testing.T) {
	blocks := []floorplan.Block{
		{ID: "b", Width: 1, Height: 1},
		{ID: "a", Width: 1, Height: 1},
	}
	placement := floorplan.Placement{"a": {X: 1, Y: 1}, "b": {X: 2, Y: 2}}

	records := PlacementRecords(placement, floorplan.Orientations{}, blocks)
	require.Len(t, records, 2)
	assert.Equal(t, "b", records[0].ID)
	assert.Equal(t, "a", records[1].ID)
}

func TestAdapterRoundTrip(t *testing.T) {
	adapter := NewAdapter()
	assert.Equal(t, "csv", adapter.Format())

	blocks, err := adapter.ParseBlocks(strings.NewReader("id,width,height,power,heat\na,10,10,0,0\n"))
	require.NoError(t, err)
	assert.Len(t, blocks, 1)

	nets, err := adapter.ParseNets(strings.NewReader("name,blocks,weight\nn,\"a,b\",1\n"))
	require.NoError(t, err)
	assert.Len(t, nets, 1)
}

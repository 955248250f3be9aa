package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/wfcerr"
)

// A contradiction reports the index of the cell that was emptied, and
// the same seed reports the same cell every time.
func TestContradictionReportsCellIndexDeterministically(t *testing.T) {
	b := ruleset.NewBuilder()
	b.AddTile("A", 1)
	b.AddTile("B", 1)
	rs, err := b.Build()
	require.NoError(t, err)

	runOnce := func(s uint64) int {
		m, err := NewModel(3, 3, rs, seed(s))
		require.NoError(t, err)
		_, err = m.Run()
		require.Error(t, err)
		cell, ok := wfcerr.AsContradiction(err)
		require.True(t, ok)
		require.GreaterOrEqual(t, cell, 0)
		require.Less(t, cell, 9)
		return cell
	}

	for s := uint64(0); s < 100; s++ {
		first := runOnce(s)
		second := runOnce(s)
		assert.Equal(t, first, second, "seed %d", s)
	}
}

// The contradicted cell is never the collapsed cell itself: collapsing
// is always legal, it is a neighbor that gets emptied.
func TestContradictionCellIsNeighborOfCollapse(t *testing.T) {
	b := ruleset.NewBuilder()
	b.AddTile("A", 1)
	b.AddTile("B", 1)
	rs, err := b.Build()
	require.NoError(t, err)

	m, err := NewModel(1, 2, rs, seed(3))
	require.NoError(t, err)
	_, err = m.Run()
	require.Error(t, err)

	cell, ok := wfcerr.AsContradiction(err)
	require.True(t, ok)
	assert.Contains(t, []int{0, 1}, cell)
}

// Weighted collapse prefers heavy tiles: with one tile vastly heavier
// than the rest and all pairs compatible, almost every cell should get
// the heavy tile.
func TestCollapseRespectsWeights(t *testing.T) {
	b := ruleset.NewBuilder()
	b.AddTile("heavy", 100)
	b.AddTile("light", 1)
	for _, from := range []ruleset.TileID{"heavy", "light"} {
		for _, to := range []ruleset.TileID{"heavy", "light"} {
			for _, d := range ruleset.Directions() {
				b.AddAdjacency(from, to, d)
			}
		}
	}
	rs, err := b.Build()
	require.NoError(t, err)

	heavy := 0
	total := 0
	for s := uint64(0); s < 20; s++ {
		m, err := NewModel(5, 5, rs, seed(s))
		require.NoError(t, err)
		grid, err := m.Run()
		require.NoError(t, err)
		for _, tile := range grid.Tiles {
			total++
			if tile == "heavy" {
				heavy++
			}
		}
	}
	// Expected heavy share is 100/101; anything over 90% is a safe bound.
	assert.Greater(t, float64(heavy)/float64(total), 0.9)
}

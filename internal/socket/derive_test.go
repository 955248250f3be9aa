package socket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeforge/tessera/internal/ruleset"
)

func allDirEdges(socketID string) Edges {
	return Edges{
		Top:    []SocketAssignment{{SocketID: socketID}},
		Right:  []SocketAssignment{{SocketID: socketID}},
		Bottom: []SocketAssignment{{SocketID: socketID}},
		Left:   []SocketAssignment{{SocketID: socketID}},
	}
}

// TestDeriveGrassWater: a "G" tile all-land and
// a "W" tile all-water, with no overlapping socket, derive G<->G and
// W<->W in all four directions and no G<->W adjacency at all.
func TestDeriveGrassWater(t *testing.T) {
	bases := []BaseTile{
		{ID: "G", Weight: 1, Symmetry: SymmetryX, Edges: allDirEdges("land")},
		{ID: "W", Weight: 1, Symmetry: SymmetryX, Edges: allDirEdges("water")},
	}

	rs, err := Derive(bases)
	require.NoError(t, err)

	for _, d := range ruleset.Directions() {
		gNeighbors, err := rs.ValidNeighbors("G", d)
		require.NoError(t, err)
		assert.Equal(t, []ruleset.TileID{"G"}, gNeighbors, "direction %s", d)

		wNeighbors, err := rs.ValidNeighbors("W", d)
		require.NoError(t, err)
		assert.Equal(t, []ruleset.TileID{"W"}, wNeighbors, "direction %s", d)
	}
}

// TestDeriveCorrectness: any two base tiles
// sharing a non-empty socket on opposing edges get adjacency in both
// directions; edges with only the empty sentinel produce none.
func TestDeriveCorrectness(t *testing.T) {
	bases := []BaseTile{
		{ID: "A", Weight: 1, Symmetry: SymmetryX, Edges: Edges{
			Right: []SocketAssignment{{SocketID: "x"}},
		}},
		{ID: "B", Weight: 1, Symmetry: SymmetryX, Edges: Edges{
			Left: []SocketAssignment{{SocketID: "x"}},
		}},
	}

	rs, err := Derive(bases)
	require.NoError(t, err)

	right, err := rs.ValidNeighbors("A", ruleset.Right)
	require.NoError(t, err)
	assert.Equal(t, []ruleset.TileID{"B"}, right)

	left, err := rs.ValidNeighbors("B", ruleset.Left)
	require.NoError(t, err)
	assert.Equal(t, []ruleset.TileID{"A"}, left)

	// Every other direction for A and B has only empty-sentinel edges
	// and must produce no adjacency.
	up, err := rs.ValidNeighbors("A", ruleset.Up)
	require.NoError(t, err)
	assert.Empty(t, up)
}

func TestDeriveEmptySentinelNeverMatchesItself(t *testing.T) {
	bases := []BaseTile{
		{ID: "A", Weight: 1, Symmetry: SymmetryX, Edges: Edges{
			Right: []SocketAssignment{{SocketID: "0"}},
		}},
		{ID: "B", Weight: 1, Symmetry: SymmetryX, Edges: Edges{
			Left: []SocketAssignment{{SocketID: ""}},
		}},
	}

	rs, err := Derive(bases)
	require.NoError(t, err)

	right, err := rs.ValidNeighbors("A", ruleset.Right)
	require.NoError(t, err)
	assert.Empty(t, right)
}

func TestDeriveEmptyBasesFailsNoTilesDefined(t *testing.T) {
	_, err := Derive(nil)
	require.Error(t, err)
}

func TestDeriveProducesSymmetricRuleSet(t *testing.T) {
	bases := []BaseTile{
		{ID: "road", Weight: 2, Symmetry: SymmetryI, Edges: Edges{
			Top:    []SocketAssignment{{SocketID: "road"}},
			Right:  []SocketAssignment{{SocketID: "grass"}},
			Bottom: []SocketAssignment{{SocketID: "road"}},
			Left:   []SocketAssignment{{SocketID: "grass"}},
		}},
		{ID: "grass", Weight: 5, Symmetry: SymmetryX, Edges: allDirEdges("grass")},
	}

	rs, err := Derive(bases)
	require.NoError(t, err)

	for _, tile := range rs.Tiles() {
		for _, d := range ruleset.Directions() {
			neighbors, err := rs.ValidNeighbors(tile, d)
			require.NoError(t, err)
			for _, n := range neighbors {
				back, err := rs.ValidNeighbors(n, d.Opposite())
				require.NoError(t, err)
				assert.Contains(t, back, tile)
			}
		}
	}
}

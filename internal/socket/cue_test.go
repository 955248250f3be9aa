package socket

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpecDir(t *testing.T, source string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.cue"), []byte(source), 0o644))
	return dir
}

func TestLoadBaseTiles(t *testing.T) {
	dir := writeSpecDir(t, `
tile: road: {
	weight:   2
	symmetry: "I"
	sockets: {
		top:    [{socketId: "road"}]
		right:  [{socketId: "grass"}]
		bottom: [{socketId: "road"}]
		left:   [{socketId: "grass"}]
	}
}

tile: grass: {
	sockets: {
		top:    [{socketId: "grass"}]
		right:  [{socketId: "grass"}]
		bottom: [{socketId: "grass"}]
		left:   [{socketId: "grass"}]
	}
}
`)

	bases, err := LoadBaseTiles(dir)
	require.NoError(t, err)
	require.Len(t, bases, 2)

	byID := make(map[string]BaseTile)
	for _, b := range bases {
		byID[b.ID] = b
	}

	road := byID["road"]
	assert.Equal(t, 2, road.Weight)
	assert.Equal(t, SymmetryI, road.Symmetry)
	require.Len(t, road.Edges.Top, 1)
	assert.Equal(t, "road", road.Edges.Top[0].SocketID)
	assert.Equal(t, 1, road.Edges.Top[0].Weight)

	grass := byID["grass"]
	assert.Equal(t, 1, grass.Weight)
	assert.Equal(t, SymmetryUnset, grass.Symmetry)
}

func TestLoadBaseTilesSocketWeight(t *testing.T) {
	dir := writeSpecDir(t, `
tile: river: {
	sockets: {
		top: [{socketId: "water", weight: 4}]
	}
}
`)

	bases, err := LoadBaseTiles(dir)
	require.NoError(t, err)
	require.Len(t, bases, 1)
	require.Len(t, bases[0].Edges.Top, 1)
	assert.Equal(t, 4, bases[0].Edges.Top[0].Weight)
	assert.Empty(t, bases[0].Edges.Bottom)
}

func TestLoadBaseTilesMissingSockets(t *testing.T) {
	dir := writeSpecDir(t, `
tile: broken: {
	weight: 1
}
`)

	_, err := LoadBaseTiles(dir)
	require.Error(t, err)
	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, loadErr.Field, "sockets")
}

func TestLoadBaseTilesMissingSocketID(t *testing.T) {
	dir := writeSpecDir(t, `
tile: broken: {
	sockets: {
		top: [{weight: 2}]
	}
}
`)

	_, err := LoadBaseTiles(dir)
	require.Error(t, err)
}

func TestLoadBaseTilesNoTileField(t *testing.T) {
	dir := writeSpecDir(t, `other: {}`)
	_, err := LoadBaseTiles(dir)
	require.Error(t, err)
}

func TestLoadBaseTilesMissingDir(t *testing.T) {
	_, err := LoadBaseTiles(filepath.Join(t.TempDir(), "does-not-exist"))
	require.Error(t, err)
}

func TestLoadThenDeriveEndToEnd(t *testing.T) {
	dir := writeSpecDir(t, `
tile: land: {
	sockets: {
		top:    [{socketId: "land"}]
		right:  [{socketId: "land"}]
		bottom: [{socketId: "land"}]
		left:   [{socketId: "land"}]
	}
}
`)

	bases, err := LoadBaseTiles(dir)
	require.NoError(t, err)

	rs, err := Derive(bases)
	require.NoError(t, err)
	assert.Equal(t, 1, rs.TileCount())
}

package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/latticeforge/tessera/internal/ruleset"
)

func writeSpecsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	source := `
tile: land: {
	sockets: {
		top:    [{socketId: "land"}]
		right:  [{socketId: "land"}]
		bottom: [{socketId: "land"}]
		left:   [{socketId: "land"}]
	}
}

tile: water: {
	sockets: {
		top:    [{socketId: "water"}]
		right:  [{socketId: "water"}]
		bottom: [{socketId: "water"}]
		left:   [{socketId: "water"}]
	}
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiles.cue"), []byte(source), 0o644))
	return dir
}

func TestDeriveToStdout(t *testing.T) {
	specsDir := writeSpecsDir(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDeriveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{specsDir})

	err := cmd.Execute()
	require.NoError(t, err)

	// The emitted JSON must itself parse back as a RuleSet.
	rs, err := ruleset.Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, 2, rs.TileCount())
}

func TestDeriveToFile(t *testing.T) {
	specsDir := writeSpecsDir(t)
	outPath := filepath.Join(t.TempDir(), "out.json")

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDeriveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{specsDir, "-o", outPath})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Derived 2 tile variant(s)")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	rs, err := ruleset.Parse(data)
	require.NoError(t, err)

	for _, d := range ruleset.Directions() {
		neighbors, err := rs.ValidNeighbors("land", d)
		require.NoError(t, err)
		assert.Equal(t, []ruleset.TileID{"land"}, neighbors)
	}
}

func TestDeriveJSON(t *testing.T) {
	specsDir := writeSpecsDir(t)

	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "json"}
	cmd := NewDeriveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{specsDir})

	err := cmd.Execute()
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestDeriveMissingDir(t *testing.T) {
	buf := &bytes.Buffer{}
	rootOpts := &RootOptions{Format: "text"}
	cmd := NewDeriveCommand(rootOpts)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{filepath.Join(t.TempDir(), "nope")})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

package solver

import (
	"fmt"
	"strings"

	"github.com/latticeforge/tessera/internal/ruleset"
)

// neighborOffsets gives the (dx, dy) for each Direction, indexed by
// ruleset.Direction's integer encoding (Up, Right, Down, Left).
var neighborOffsets = [4][2]int{
	{0, -1}, // Up
	{1, 0},  // Right
	{0, 1},  // Down
	{-1, 0}, // Left
}

// neighborIndex returns the flat index of the cell in direction d from
// (x, y), or ok=false if that neighbor would fall outside the grid.
// Boundary cells simply have fewer than four neighbors; this is the only
// edge case propagation has.
func neighborIndex(x, y, width, height int, d ruleset.Direction) (idx int, ok bool) {
	off := neighborOffsets[d]
	nx, ny := x+off[0], y+off[1]
	if nx < 0 || nx >= width || ny < 0 || ny >= height {
		return 0, false
	}
	return ny*width + nx, true
}

// Grid is the solver's output: width*height tile ids in row-major order.
type Grid struct {
	Width, Height int
	Tiles         []ruleset.TileID
}

// At returns the tile id at (x, y).
func (g Grid) At(x, y int) ruleset.TileID {
	return g.Tiles[y*g.Width+x]
}

// String renders the grid as whitespace-separated tile ids, one row per
// line - a convenient debug/CLI representation, not part of the engine
// contract.
func (g Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			if x > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprint(&b, g.At(x, y))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

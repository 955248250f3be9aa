package solver

import (
	"math"

	"github.com/latticeforge/tessera/internal/bitset"
)

// cellState is a cell's mutable solver-side record: its possibility
// bitset plus a cached Shannon-entropy numerator/denominator so
// observe() need not recompute entropy by summing over all possibilities
// every iteration.
//
// Caching math: H = -sum (w/W) log2(w/W) = log2(W) - (sumWLogW / W),
// where W = sumW = sum of w over remaining possibilities and
// sumWLogW = sum of w*log2(w). Removing a tile of weight w during
// propagation subtracts w from sumW and w*log2(w) from sumWLogW in O(1)
// rather than recomputing the sums from scratch.
type cellState struct {
	possibilities bitset.Set
	collapsed     bool
	sumW          float64
	sumWLogW      float64
}

// entropy returns the cached Shannon entropy over the cell's remaining
// possibilities. Undefined (and never called) once the cell is
// collapsed - collapsed cells are excluded from selection entirely.
func (c *cellState) entropy() float64 {
	if c.sumW <= 0 {
		return 0
	}
	return math.Log2(c.sumW) - c.sumWLogW/c.sumW
}

// removeTile updates the entropy cache to reflect tile weight w leaving
// the cell's possibility set. Callers are responsible for clearing the
// corresponding bit in possibilities.
func (c *cellState) removeTile(w float64) {
	c.sumW -= w
	if w > 0 {
		c.sumWLogW -= w * math.Log2(w)
	}
}

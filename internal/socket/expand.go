package socket

import "fmt"

// transform is one (rotation, reflection) pair a symmetry class expands
// a base tile into. Composition order is
// fixed: rotation applies first, then horizontal reflection, then
// vertical reflection.
type transform struct {
	rotationDeg int
	reflectH    bool
	reflectV    bool
}

// isIdentity reports whether t leaves edges unchanged - the base variant,
// which keeps the tile's original id rather than getting a suffix.
func (t transform) isIdentity() bool {
	return t.rotationDeg == 0 && !t.reflectH && !t.reflectV
}

// suffix renders the base_<rot>[h][v] variant-naming convention. The
// identity transform has no suffix at all - callers
// must special-case it via isIdentity, since suffix() itself returns "_0"
// for the identity (rotationDeg 0 with h or v set still needs "_0h"/"_0v").
func (t transform) suffix() string {
	s := fmt.Sprintf("_%d", t.rotationDeg)
	if t.reflectH {
		s += "h"
	}
	if t.reflectV {
		s += "v"
	}
	return s
}

// symmetryTransforms maps each symmetry class to its exhaustive,
// ordered variant list.
var symmetryTransforms = map[Symmetry][]transform{
	SymmetryX: {
		{0, false, false},
	},
	SymmetryUnset: {
		{0, false, false},
	},
	SymmetryI: {
		{0, false, false},
		{0, true, false},
	},
	SymmetryT: {
		{0, false, false},
		{90, false, false},
		{180, false, false},
		{270, false, false},
	},
	SymmetryL: {
		{0, false, false},
		{90, false, false},
		{180, false, false},
		{270, false, false},
	},
	SymmetryDiagonal: {
		{0, false, false},
		{0, true, true},
	},
	SymmetryF: {
		{0, false, false},
		{90, false, false},
		{180, false, false},
		{270, false, false},
		{0, true, false},
		{90, true, false},
		{180, true, false},
		{270, true, false},
	},
	SymmetryN: {
		{0, false, false},
		{90, false, false},
		{180, false, false},
		{270, false, false},
		{0, true, false},
		{90, true, false},
		{180, true, false},
		{270, true, false},
	},
}

// TransformsFor returns the ordered transform list for a symmetry class,
// falling back to SymmetryUnset's single identity transform for any
// class not in the table.
func TransformsFor(sym Symmetry) []transform {
	if ts, ok := symmetryTransforms[sym]; ok {
		return ts
	}
	return symmetryTransforms[SymmetryUnset]
}

// VariantCount returns the number of variants a symmetry class expands
// into.
func VariantCount(sym Symmetry) int {
	return len(TransformsFor(sym))
}

// Variant is one expanded copy of a BaseTile: its own id and the edge
// lists resulting from applying a transform to the base tile's edges.
type Variant struct {
	ID     string
	Weight int
	Edges  Edges
}

// expandTile enumerates the variants of one base tile in the fixed order
// its symmetry class's transform table lists them, so derivation output
// is stable across runs. The base variant
// (identity transform) keeps the original id; every other variant is
// suffixed per the base_<rot>[h][v] convention.
func expandTile(bt BaseTile) []Variant {
	transforms := TransformsFor(bt.Symmetry)
	variants := make([]Variant, len(transforms))
	for i, t := range transforms {
		id := bt.ID
		if !t.isIdentity() {
			id = bt.ID + t.suffix()
		}
		variants[i] = Variant{
			ID:     id,
			Weight: bt.Weight,
			Edges:  applyTransform(bt.Edges, t),
		}
	}
	return variants
}

// applyTransform permutes edges under t: rotation cycles the four edges
// first, then horizontal reflection swaps left/right, then vertical
// reflection swaps top/bottom.
func applyTransform(e Edges, t transform) Edges {
	out := rotateEdges(e, t.rotationDeg)
	if t.reflectH {
		out.Left, out.Right = out.Right, out.Left
	}
	if t.reflectV {
		out.Top, out.Bottom = out.Bottom, out.Top
	}
	return out
}

// rotateEdges applies deg degrees of clockwise rotation (must be a
// multiple of 90) by cycling the four edge lists: a single 90-degree
// step maps top<-left, right<-top, bottom<-right, left<-bottom.
func rotateEdges(e Edges, deg int) Edges {
	steps := (deg / 90) % 4
	if steps < 0 {
		steps += 4
	}
	for i := 0; i < steps; i++ {
		e.Top, e.Right, e.Bottom, e.Left = e.Left, e.Top, e.Right, e.Bottom
	}
	return e
}

// edgeInDirection returns the edge socket list facing dir, using the
// same integer encoding ruleset.Direction defines (Up, Right, Down,
// Left) so callers in derive.go can iterate directions generically
// without importing ruleset into this file.
func (e Edges) edgeInDirection(dir int) []SocketAssignment {
	switch dir {
	case 0: // Up
		return e.Top
	case 1: // Right
		return e.Right
	case 2: // Down
		return e.Bottom
	case 3: // Left
		return e.Left
	default:
		return nil
	}
}

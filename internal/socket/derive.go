package socket

import (
	"sort"

	"github.com/latticeforge/tessera/internal/ruleset"
)

// Derive expands every base tile into its symmetry variants and derives
// adjacency between variants whose opposing edges share a socket. The
// result is a RuleSet whose tile set is the union of
// all variants and whose weights equal each variant's owning base
// tile's weight.
//
// Determinism: base tiles are sorted by id, then each tile's variants
// are enumerated in symmetry-table order (expand.go), so the emitted
// tile and adjacency order is stable across runs.
func Derive(bases []BaseTile) (*ruleset.RuleSet, error) {
	sorted := make([]BaseTile, len(bases))
	copy(sorted, bases)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	b := ruleset.NewBuilder()

	var variants []Variant
	for _, bt := range sorted {
		vs := expandTile(bt)
		variants = append(variants, vs...)
		for _, v := range vs {
			b.AddTile(ruleset.TileID(v.ID), ruleset.Weight(v.Weight))
		}
	}

	for _, from := range variants {
		for _, dir := range ruleset.Directions() {
			fromEdge := from.Edges.edgeInDirection(int(dir))
			if allEmpty(fromEdge) {
				continue
			}
			opp := dir.Opposite()
			for _, to := range variants {
				toEdge := to.Edges.edgeInDirection(int(opp))
				if compatible(fromEdge, toEdge) {
					// AddAdjacency inserts both directions itself, so
					// only the (from, dir) -> to direction needs
					// emitting here even though compatibility is
					// symmetric and we will also see (to, opp) -> from
					// as its own `from` iteration; Builder dedupes via
					// a set, so the redundant call is harmless.
					b.AddAdjacency(ruleset.TileID(from.ID), ruleset.TileID(to.ID), dir)
				}
			}
		}
	}

	return b.Build()
}

// allEmpty reports whether every socket assignment on an edge is the
// empty sentinel - such an edge is inert and contributes no adjacency
// even against another all-empty edge.
func allEmpty(edge []SocketAssignment) bool {
	for _, s := range edge {
		if !isEmptySocket(s.SocketID) {
			return false
		}
	}
	return true
}

// compatible reports whether two opposing edges share at least one
// non-empty socket id. Two all-empty edges are never compatible: the
// empty sentinel never matches, even itself.
func compatible(a, b []SocketAssignment) bool {
	bIDs := make(map[string]bool, len(b))
	for _, s := range b {
		if !isEmptySocket(s.SocketID) {
			bIDs[s.SocketID] = true
		}
	}
	for _, s := range a {
		if isEmptySocket(s.SocketID) {
			continue
		}
		if bIDs[s.SocketID] {
			return true
		}
	}
	return false
}

package ruleset

import (
	"sort"

	"github.com/latticeforge/tessera/internal/bitset"
	"github.com/latticeforge/tessera/internal/wfcerr"
)

// RuleSet is an immutable tile universe: the set of tile ids, each tile's
// weight, and the adjacency relation. Construct one with NewBuilder (or
// Parse the canonical JSON form); the returned value never mutates.
type RuleSet struct {
	// ids is the stable, sorted tile order every index below refers to.
	// Sorting by id (rather than insertion order) is what makes variant
	// enumeration and RNG draws reproducible across processes.
	ids     []TileID
	index   map[TileID]int
	weights []Weight

	// adjacency[tileIdx][dir] is the bitset of tile indices permitted to
	// sit in direction dir from tile tileIdx.
	adjacency [][4]bitset.Set
}

// TileCount returns the number of distinct tiles in the RuleSet.
func (r *RuleSet) TileCount() int { return len(r.ids) }

// Tiles returns the tile ids in their stable, sorted order. The returned
// slice must not be mutated by callers.
func (r *RuleSet) Tiles() []TileID { return r.ids }

// IndexOf returns the dense index of a tile id, used by the solver to
// address bitsets. Returns InvalidTileId if id is unknown.
func (r *RuleSet) IndexOf(id TileID) (int, error) {
	idx, ok := r.index[id]
	if !ok {
		return 0, wfcerr.InvalidTileID(string(id))
	}
	return idx, nil
}

// IDAt returns the tile id at a dense index. Behavior is undefined for
// out-of-range indices; callers only ever pass indices obtained from this
// RuleSet.
func (r *RuleSet) IDAt(idx int) TileID { return r.ids[idx] }

// WeightAt returns the weight of the tile at a dense index.
func (r *RuleSet) WeightAt(idx int) Weight { return r.weights[idx] }

// Weight returns the weight of a tile, failing with InvalidTileId if the
// tile is unknown.
func (r *RuleSet) Weight(id TileID) (Weight, error) {
	idx, err := r.IndexOf(id)
	if err != nil {
		return 0, err
	}
	return r.weights[idx], nil
}

// AllowedMaskAt returns the precomputed bitset of tile indices permitted
// to sit in direction d from the tile at index idx. The returned Set must
// not be mutated; callers that need to combine it with others should
// Clone first.
func (r *RuleSet) AllowedMaskAt(idx int, d Direction) bitset.Set {
	return r.adjacency[idx][d]
}

// ValidNeighbors returns the tile ids permitted to sit in direction d
// next to tile. Fails with InvalidTileId if tile is unknown.
func (r *RuleSet) ValidNeighbors(tile TileID, d Direction) ([]TileID, error) {
	idx, err := r.IndexOf(tile)
	if err != nil {
		return nil, err
	}
	var out []TileID
	r.adjacency[idx][d].Each(func(i int) {
		out = append(out, r.ids[i])
	})
	return out, nil
}

// FullPossibilitySet returns a bitset with every tile index present,
// sized to this RuleSet's tile count. Used by the solver to initialize
// each cell's possibilities.
func (r *RuleSet) FullPossibilitySet() bitset.Set {
	return bitset.Full(len(r.ids))
}

// Builder accumulates tiles and adjacency entries before producing an
// immutable RuleSet via Build.
type Builder struct {
	weights   map[TileID]Weight
	order     []TileID // insertion order, re-sorted at Build time
	adjacency map[TileID]map[Direction]map[TileID]bool
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		weights:   make(map[TileID]Weight),
		adjacency: make(map[TileID]map[Direction]map[TileID]bool),
	}
}

// AddTile registers a tile with the given weight. weight <= 0 is
// normalized to 1, the documented default for an omitted weight.
func (b *Builder) AddTile(id TileID, weight Weight) {
	if _, exists := b.weights[id]; !exists {
		b.order = append(b.order, id)
	}
	if weight <= 0 {
		weight = 1
	}
	b.weights[id] = weight
}

// AddAdjacency records that `to` may sit in direction `dir` from `from`,
// and automatically inserts the symmetric entry (`from` in
// Opposite(dir) from `to`) so the RuleSet invariant holds without the
// caller having to do it themselves.
func (b *Builder) AddAdjacency(from, to TileID, dir Direction) {
	b.addOneWay(from, to, dir)
	b.addOneWay(to, from, dir.Opposite())
}

func (b *Builder) addOneWay(from, to TileID, dir Direction) {
	if b.adjacency[from] == nil {
		b.adjacency[from] = make(map[Direction]map[TileID]bool)
	}
	if b.adjacency[from][dir] == nil {
		b.adjacency[from][dir] = make(map[TileID]bool)
	}
	b.adjacency[from][dir][to] = true
}

// Build finalizes the RuleSet. Fails with NoTilesDefined if no tile was
// ever added, or with InvalidTileId if an adjacency entry references a
// tile that was never added via AddTile.
func (b *Builder) Build() (*RuleSet, error) {
	if len(b.order) == 0 {
		return nil, wfcerr.NoTilesDefined()
	}

	ids := make([]TileID, len(b.order))
	copy(ids, b.order)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	index := make(map[TileID]int, len(ids))
	weights := make([]Weight, len(ids))
	for i, id := range ids {
		index[id] = i
		weights[i] = b.weights[id]
	}

	adjacency := make([][4]bitset.Set, len(ids))
	for i := range adjacency {
		for _, d := range Directions() {
			adjacency[i][d] = bitset.New(len(ids))
		}
	}

	for from, byDir := range b.adjacency {
		fromIdx, ok := index[from]
		if !ok {
			return nil, wfcerr.InvalidTileID(string(from))
		}
		for dir, tos := range byDir {
			for to := range tos {
				toIdx, ok := index[to]
				if !ok {
					return nil, wfcerr.InvalidTileID(string(to))
				}
				adjacency[fromIdx][dir].Set(toIdx)
			}
		}
	}

	return &RuleSet{ids: ids, index: index, weights: weights, adjacency: adjacency}, nil
}

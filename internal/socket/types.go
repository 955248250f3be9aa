package socket

// EmptySocket is the designated non-matching sentinel. Both the empty
// string and the literal "0" are treated as empty. An edge holding only
// empty-sentinel entries is inert and never contributes to adjacency,
// even against another empty edge.
const EmptySocket = ""

// legacyEmptySocket is the alternate "0" convention some tile editors
// emit. isEmptySocket treats both as inert.
const legacyEmptySocket = "0"

func isEmptySocket(id string) bool {
	return id == EmptySocket || id == legacyEmptySocket
}

// SocketAssignment is one socket id on a tile edge. Weight is carried
// as metadata for tile editors; collapse probabilities use per-tile
// weights only (BaseTile.Weight), so SocketAssignment.Weight never
// reaches the solver.
type SocketAssignment struct {
	SocketID string
	Weight   int
}

// Edges holds the four edge-socket lists of a tile, indexed by
// ruleset.Direction's integer encoding via edgeInDirection (expand.go).
type Edges struct {
	Top, Right, Bottom, Left []SocketAssignment
}

// Symmetry names a base tile's symmetry class, which determines how
// many rotation/reflection variants the tile expands into. SymmetryUnset
// behaves identically to SymmetryX: one variant, the identity transform.
type Symmetry string

const (
	SymmetryX        Symmetry = "X"
	SymmetryI        Symmetry = "I"
	SymmetryT        Symmetry = "T"
	SymmetryL        Symmetry = "L"
	SymmetryDiagonal Symmetry = "\\"
	SymmetryF        Symmetry = "F"
	SymmetryN        Symmetry = "N"
	SymmetryUnset    Symmetry = ""
)

// BaseTile is one user-level tile description: an id, a selection
// weight, a symmetry class, and its four edge-socket lists. This is the
// Derive input; LoadBaseTiles builds a []BaseTile from CUE source.
type BaseTile struct {
	ID       string
	Weight   int
	Symmetry Symmetry
	Edges    Edges
}

package socket

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/load"
	"cuelang.org/go/cue/token"
)

// LoadError reports a malformed socket-derivation input file, carrying a
// CUE source position when one is available.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadBaseTiles reads the CUE-described socket-derivation input format
// from dir and returns the []BaseTile Derive expects.
//
// Expected shape, one struct per tile under the top-level "tile" field:
//
//	tile: road: {
//		weight:   2
//		symmetry: "I"
//		sockets: {
//			top:    [{socketId: "road"}]
//			right:  [{socketId: "grass"}]
//			bottom: [{socketId: "road"}]
//			left:   [{socketId: "grass"}]
//		}
//	}
//
// weight, symmetry, and a socket entry's weight are all optional and
// default per BaseTile.Weight (1) and SymmetryUnset respectively.
func LoadBaseTiles(dir string) ([]BaseTile, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, &LoadError{Field: "dir", Message: fmt.Sprintf("specs directory not accessible: %v", err)}
	}
	if !info.IsDir() {
		return nil, &LoadError{Field: "dir", Message: fmt.Sprintf("not a directory: %s", dir)}
	}

	ctx := cuecontext.New()
	cfg := &load.Config{Dir: dir, Package: "_"}
	instances := load.Instances([]string{"."}, cfg)
	if len(instances) == 0 {
		return nil, &LoadError{Field: "dir", Message: "no CUE instances loaded"}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, &LoadError{Field: "dir", Message: fmt.Sprintf("loading CUE files: %v", inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, &LoadError{Field: "dir", Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	tilesVal := value.LookupPath(cue.ParsePath("tile"))
	if !tilesVal.Exists() {
		return nil, &LoadError{Field: "tile", Message: "no top-level \"tile\" field found", Pos: value.Pos()}
	}

	iter, err := tilesVal.Fields()
	if err != nil {
		return nil, &LoadError{Field: "tile", Message: fmt.Sprintf("iterating tiles: %v", err), Pos: tilesVal.Pos()}
	}

	var bases []BaseTile
	for iter.Next() {
		bt, err := compileBaseTile(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		bases = append(bases, bt)
	}
	if len(bases) == 0 {
		return nil, &LoadError{Field: "tile", Message: "no tiles found under \"tile\"", Pos: value.Pos()}
	}
	return bases, nil
}

func compileBaseTile(id string, v cue.Value) (BaseTile, error) {
	bt := BaseTile{ID: id, Weight: 1, Symmetry: SymmetryUnset}

	if w := v.LookupPath(cue.ParsePath("weight")); w.Exists() {
		n, err := w.Int64()
		if err != nil {
			return BaseTile{}, &LoadError{Field: "tile." + id + ".weight", Message: err.Error(), Pos: w.Pos()}
		}
		if n > 0 {
			bt.Weight = int(n)
		}
	}

	if s := v.LookupPath(cue.ParsePath("symmetry")); s.Exists() {
		str, err := s.String()
		if err != nil {
			return BaseTile{}, &LoadError{Field: "tile." + id + ".symmetry", Message: err.Error(), Pos: s.Pos()}
		}
		bt.Symmetry = Symmetry(str)
	}

	sockets := v.LookupPath(cue.ParsePath("sockets"))
	if !sockets.Exists() {
		return BaseTile{}, &LoadError{Field: "tile." + id + ".sockets", Message: "sockets is required", Pos: v.Pos()}
	}

	var err error
	if bt.Edges.Top, err = compileEdge(id, "top", sockets); err != nil {
		return BaseTile{}, err
	}
	if bt.Edges.Right, err = compileEdge(id, "right", sockets); err != nil {
		return BaseTile{}, err
	}
	if bt.Edges.Bottom, err = compileEdge(id, "bottom", sockets); err != nil {
		return BaseTile{}, err
	}
	if bt.Edges.Left, err = compileEdge(id, "left", sockets); err != nil {
		return BaseTile{}, err
	}

	return bt, nil
}

func compileEdge(tileID, edgeName string, sockets cue.Value) ([]SocketAssignment, error) {
	edgeVal := sockets.LookupPath(cue.ParsePath(edgeName))
	if !edgeVal.Exists() {
		return nil, nil
	}

	iter, err := edgeVal.List()
	if err != nil {
		return nil, &LoadError{
			Field:   fmt.Sprintf("tile.%s.sockets.%s", tileID, edgeName),
			Message: fmt.Sprintf("expected a list: %v", err),
			Pos:     edgeVal.Pos(),
		}
	}

	var out []SocketAssignment
	for iter.Next() {
		entry := iter.Value()
		idVal := entry.LookupPath(cue.ParsePath("socketId"))
		if !idVal.Exists() {
			return nil, &LoadError{
				Field:   fmt.Sprintf("tile.%s.sockets.%s", tileID, edgeName),
				Message: "socket entry missing socketId",
				Pos:     entry.Pos(),
			}
		}
		socketID, err := idVal.String()
		if err != nil {
			return nil, &LoadError{
				Field:   fmt.Sprintf("tile.%s.sockets.%s.socketId", tileID, edgeName),
				Message: err.Error(),
				Pos:     idVal.Pos(),
			}
		}

		weight := 1
		if wVal := entry.LookupPath(cue.ParsePath("weight")); wVal.Exists() {
			n, err := wVal.Int64()
			if err != nil {
				return nil, &LoadError{
					Field:   fmt.Sprintf("tile.%s.sockets.%s.weight", tileID, edgeName),
					Message: err.Error(),
					Pos:     wVal.Pos(),
				}
			}
			if n > 0 {
				weight = int(n)
			}
		}

		out = append(out, SocketAssignment{SocketID: socketID, Weight: weight})
	}
	return out, nil
}

package ruleset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/latticeforge/tessera/internal/wfcerr"
)

// wireTile is the canonical on-the-wire tile entry.
type wireTile struct {
	ID     string `json:"id"`
	Weight int    `json:"weight,omitempty"`
}

// wireRule is the canonical on-the-wire adjacency entry.
type wireRule struct {
	From      string `json:"from"`
	To        string `json:"to"`
	Direction string `json:"direction"`
}

// wireRuleSet is the canonical serialization envelope. Unknown fields are
// ignored on parse (encoding/json's default behavior for keys with no
// matching struct field), which is the documented parser semantic.
type wireRuleSet struct {
	Tiles []wireTile `json:"tiles"`
	Rules []wireRule `json:"rules"`
}

// Parse decodes the canonical JSON RuleSet format.
//
// Parser policy: the
// loader symmetrizes adjacency. A "rules" entry need only be listed in
// one direction; Parse inserts the opposite-direction entry itself, the
// same way Builder.AddAdjacency does. This matches what socket
// derivation already produces (both directions emitted), so round-tripping
// a socket-derived RuleSet through Serialize/Parse is lossless regardless
// of which policy the file's author assumed.
//
// A "rules" entry naming an undeclared tile is a parse error, not a
// silent drop.
func Parse(data []byte) (*RuleSet, error) {
	var wire wireRuleSet
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&wire); err != nil {
		line, col := offsetToLineCol(data, jsonErrorOffset(err))
		return nil, wfcerr.JSONParseError(fmt.Sprintf("malformed ruleset json: %v", err), line, col, jsonErrorOffset(err))
	}

	if len(wire.Tiles) == 0 {
		return nil, wfcerr.NoTilesDefined()
	}

	b := NewBuilder()
	for _, t := range wire.Tiles {
		weight := t.Weight
		if weight <= 0 {
			weight = 1
		}
		b.AddTile(TileID(t.ID), Weight(weight))
	}

	declared := make(map[TileID]bool, len(wire.Tiles))
	for _, t := range wire.Tiles {
		declared[TileID(t.ID)] = true
	}

	for _, r := range wire.Rules {
		dir, ok := ParseDirection(r.Direction)
		if !ok {
			return nil, wfcerr.JSONParseError(fmt.Sprintf("unknown direction %q", r.Direction), 0, 0, 0)
		}
		from, to := TileID(r.From), TileID(r.To)
		if !declared[from] {
			return nil, wfcerr.JSONParseError(fmt.Sprintf("rule references undeclared tile %q", r.From), 0, 0, 0)
		}
		if !declared[to] {
			return nil, wfcerr.JSONParseError(fmt.Sprintf("rule references undeclared tile %q", r.To), 0, 0, 0)
		}
		b.AddAdjacency(from, to, dir)
	}

	return b.Build()
}

// Serialize encodes the RuleSet to its canonical JSON form. The result
// round-trips through Parse to a logically equal RuleSet (same
// tile->weight mapping, same adjacency relation);
// tile and rule ordering is not guaranteed to match a hand-authored file
// byte for byte.
func (r *RuleSet) Serialize() ([]byte, error) {
	wire := wireRuleSet{
		Tiles: make([]wireTile, len(r.ids)),
	}
	for i, id := range r.ids {
		wire.Tiles[i] = wireTile{ID: string(id), Weight: int(r.weights[i])}
	}

	for i := range r.ids {
		for _, d := range Directions() {
			r.adjacency[i][d].Each(func(j int) {
				wire.Rules = append(wire.Rules, wireRule{
					From:      string(r.ids[i]),
					To:        string(r.ids[j]),
					Direction: d.String(),
				})
			})
		}
	}

	return json.MarshalIndent(wire, "", "  ")
}

// jsonErrorOffset extracts the byte offset from a json error, when known.
func jsonErrorOffset(err error) int {
	switch e := err.(type) {
	case *json.SyntaxError:
		return int(e.Offset)
	case *json.UnmarshalTypeError:
		return int(e.Offset)
	default:
		return 0
	}
}

// offsetToLineCol converts a byte offset into 1-based line/column
// numbers, the position fields JsonParseError carries when the
// decoder can attribute one.
func offsetToLineCol(data []byte, offset int) (line, col int) {
	if offset <= 0 || offset > len(data) {
		return 0, 0
	}
	line, col = 1, 1
	for i := 0; i < offset; i++ {
		if data[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return line, col
}

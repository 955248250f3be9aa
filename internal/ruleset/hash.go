package ruleset

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// domainRuleSet is the domain-separation prefix for RuleSet content
// hashes: SHA-256(domain + 0x00 + data), so a ruleset hash can never
// collide with another object kind hashed the same way.
const domainRuleSet = "tessera/ruleset/v1"

// Hash returns a stable content hash of the RuleSet: two RuleSets with
// the same tiles, weights, and adjacency relation (regardless of
// insertion order) hash identically. internal/store records it with each
// run, and store.Replay compares it to confirm a replay uses the same rules.
func (r *RuleSet) Hash() string {
	h := sha256.New()
	h.Write([]byte(domainRuleSet))
	h.Write([]byte{0x00})

	for i, id := range r.ids {
		fmt.Fprintf(h, "tile\x1f%s\x1f%d\n", norm.NFC.String(string(id)), r.weights[i])
	}

	type edge struct {
		from, dir, to string
	}
	var edges []edge
	for i := range r.ids {
		for _, d := range Directions() {
			r.adjacency[i][d].Each(func(j int) {
				edges = append(edges, edge{string(r.ids[i]), d.String(), string(r.ids[j])})
			})
		}
	}
	sort.Slice(edges, func(a, b int) bool {
		if edges[a].from != edges[b].from {
			return edges[a].from < edges[b].from
		}
		if edges[a].dir != edges[b].dir {
			return edges[a].dir < edges[b].dir
		}
		return edges[a].to < edges[b].to
	})
	for _, e := range edges {
		fmt.Fprintf(h, "rule\x1f%s\x1f%s\x1f%s\n", e.from, e.dir, e.to)
	}

	return hex.EncodeToString(h.Sum(nil))
}

// Equal reports whether r and o describe the same tile->weight mapping
// and the same adjacency relation.
func (r *RuleSet) Equal(o *RuleSet) bool {
	if o == nil {
		return false
	}
	return r.Hash() == o.Hash()
}

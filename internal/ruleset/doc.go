// Package ruleset implements the tile universe: tile identifiers, their
// selection weights, and the per-direction adjacency relation that the
// solver enforces.
//
// A RuleSet is built once (via Builder, or by Parse-ing the canonical
// JSON form) and is immutable and safe for concurrent read-only use
// afterward. See the package-level invariant below.
//
// INVARIANT (rule-relation symmetry):
// b is a valid neighbor of a in direction d if and only if a is a valid
// neighbor of b in the opposite direction. Both Builder.AddAdjacency and
// the socket-derivation pipeline (package socket) must preserve this; the
// solver relies on it and never checks it at runtime.
package ruleset

// Package socket implements the symmetry expander and socket-derivation
// pipeline: translating a higher-level description of base tiles - each
// with four edge-socket lists and a symmetry class - into the flat
// ruleset.RuleSet the solver consumes.
//
// The pipeline has two pure stages, run in sequence by Derive:
//
//  1. Expand each base tile into its symmetry-class variants, permuting
//     the four edge-socket lists under each variant's rotation/reflection
//     transform (expand.go).
//  2. Derive adjacency between every ordered pair of variants whose
//     opposing edges share a non-empty socket id (derive.go).
//
// Neither stage performs I/O; LoadBaseTiles (cue.go) is the only part of
// this package that touches the filesystem, and it exists solely to feed
// Derive from the CUE-described editor input format.
package socket

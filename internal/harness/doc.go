// Package harness is a golden/scenario conformance framework for the
// solver: end-to-end fixtures with literal expected outputs.
//
// A Scenario is a YAML fixture naming a ruleset (inline or by path),
// dimensions, an optional seed, and an expected outcome: either a grid
// (row-major tile ids) or a contradiction cell index. Run executes one
// against the real solver and harness; RunWithGolden additionally
// snapshots the outcome against a goldie golden file, so a scenario's
// expected grid can live as a checked-in fixture rather than inline YAML
// for larger grids.
//
package harness

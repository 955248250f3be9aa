// Package solver implements the stateful constraint-solving core: the
// grid of partially-collapsed cells, entropy-driven cell selection,
// weighted collapse, and transitive constraint propagation.
//
// ARCHITECTURE:
//
// Model owns the grid, a deterministic RNG stream, and a propagation
// worklist. Run() is the single blocking operation: it repeats
// observe -> collapse -> propagate until every cell is collapsed (success)
// or a cell is reduced to zero possibilities (Contradiction).
//
// Single-writer, single-goroutine:
// A Model is not thread-safe and must not be accessed concurrently;
// deterministic replay depends on it. Distinct Models (e.g. to explore
// different seeds) may run on separate goroutines; they share only a
// read-only *ruleset.RuleSet.
//
// DETERMINISM:
//
// All non-determinism is drawn from one seeded RNG stream, in a fixed
// order: the tie-breaking jitter first, then the weighted collapse
// sample. Given identical width, height, seed, and RuleSet, two runs
// produce byte-identical grids.
package solver

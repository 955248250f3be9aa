package store

import (
	"fmt"

	"github.com/latticeforge/tessera/internal/ruleset"
	"github.com/latticeforge/tessera/internal/solver"
	"github.com/latticeforge/tessera/internal/wfcerr"
)

// ReplayResult is the outcome of re-running a recorded Run against a
// caller-supplied RuleSet.
type ReplayResult struct {
	Run       Run
	Grid      solver.Grid
	RunErr    error // non-nil if the replay itself produced a Contradiction/etc.
	Identical bool  // true iff the replay matches the recorded outcome exactly
}

// Replay re-runs r against rs with r's recorded width, height, and seed,
// and reports whether the outcome matches what was recorded: two runs of
// the same inputs must return identical grids, or identical errors with
// identical cell indices.
//
// Replay fails outright (returns an error, not a mismatch) if rs's
// content hash does not match r.RuleSetHash: replaying against a
// different ruleset is not a determinism test.
func Replay(r Run, rs *ruleset.RuleSet) (*ReplayResult, error) {
	if rs.Hash() != r.RuleSetHash {
		return nil, fmt.Errorf("replay %s: ruleset hash mismatch: recorded %s, supplied %s", r.ID, r.RuleSetHash, rs.Hash())
	}

	model, err := solver.NewModel(r.Width, r.Height, rs, r.Seed)
	if err != nil {
		return &ReplayResult{Run: r, RunErr: err, Identical: false}, nil
	}

	grid, runErr := model.Run()
	result := &ReplayResult{Run: r, Grid: grid, RunErr: runErr}

	switch {
	case runErr == nil && r.Outcome == OutcomeSuccess:
		result.Identical = grid.String() == r.Grid
	case runErr != nil && r.Outcome == OutcomeContradiction:
		cell, ok := wfcerr.AsContradiction(runErr)
		result.Identical = ok && r.Contradiction != nil && cell == *r.Contradiction
	default:
		result.Identical = false
	}
	return result, nil
}

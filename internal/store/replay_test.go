package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/latticeforge/tessera/internal/ruleset"
)

func singletonRuleSet(t *testing.T) *ruleset.RuleSet {
	t.Helper()
	b := ruleset.NewBuilder()
	b.AddTile("A", 1)
	b.AddAdjacency("A", "A", ruleset.Up)
	b.AddAdjacency("A", "A", ruleset.Right)
	rs, err := b.Build()
	require.NoError(t, err)
	return rs
}

func TestReplayIdenticalOnSuccess(t *testing.T) {
	rs := singletonRuleSet(t)
	run := Run{
		ID:          "run-1",
		RuleSetHash: rs.Hash(),
		Width:       2,
		Height:      2,
		Outcome:     OutcomeSuccess,
		Grid:        "A A\nA A\n",
	}

	result, err := Replay(run, rs)
	require.NoError(t, err)
	require.NoError(t, result.RunErr)
	require.True(t, result.Identical)
}

func TestReplayRejectsHashMismatch(t *testing.T) {
	rs := singletonRuleSet(t)
	run := Run{ID: "run-1", RuleSetHash: "not-the-real-hash", Width: 2, Height: 2, Outcome: OutcomeSuccess}

	_, err := Replay(run, rs)
	require.Error(t, err)
}

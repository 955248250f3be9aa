package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "runs.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestRecordAndGetRun(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	seed := uint64(42)
	run := Run{
		ID:          "run-1",
		RuleSetHash: "abc123",
		Width:       3,
		Height:      3,
		Seed:        &seed,
		Outcome:     OutcomeSuccess,
		Grid:        "A A A\nA A A\nA A A\n",
		CreatedAt:   "2026-01-01T00:00:00Z",
	}
	require.NoError(t, s.RecordRun(ctx, run))

	got, err := s.GetRun(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, run.RuleSetHash, got.RuleSetHash)
	require.Equal(t, run.Width, got.Width)
	require.NotNil(t, got.Seed)
	require.Equal(t, seed, *got.Seed)
	require.Equal(t, run.Grid, got.Grid)
	require.Nil(t, got.Contradiction)
}

func TestRecordRunWithContradiction(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cell := 7
	run := Run{
		ID:            "run-2",
		RuleSetHash:   "def456",
		Width:         2,
		Height:        2,
		Outcome:       OutcomeContradiction,
		Contradiction: &cell,
		CreatedAt:     "2026-01-01T00:00:00Z",
	}
	require.NoError(t, s.RecordRun(ctx, run))

	got, err := s.GetRun(ctx, "run-2")
	require.NoError(t, err)
	require.NotNil(t, got.Contradiction)
	require.Equal(t, 7, *got.Contradiction)
	require.Nil(t, got.Seed)
}

func TestGetRunMissingReturnsNilNil(t *testing.T) {
	s := openTestStore(t)
	got, err := s.GetRun(context.Background(), "does-not-exist")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestListRunsByRuleSetHashOrdersNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i, ts := range []string{"2026-01-01T00:00:00Z", "2026-01-02T00:00:00Z"} {
		require.NoError(t, s.RecordRun(ctx, Run{
			ID:          "run-" + string(rune('a'+i)),
			RuleSetHash: "shared",
			Width:       1,
			Height:      1,
			Outcome:     OutcomeSuccess,
			CreatedAt:   ts,
		}))
	}

	runs, err := s.ListRunsByRuleSetHash(ctx, "shared")
	require.NoError(t, err)
	require.Len(t, runs, 2)
	require.Equal(t, "2026-01-02T00:00:00Z", runs[0].CreatedAt)
}

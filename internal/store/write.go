package store

import (
	"context"
	"fmt"
)

// RecordRun inserts a Run. IDs are expected to be unique (the CLI
// generates them with google/uuid); a duplicate ID is a caller error and
// surfaces as a constraint violation rather than being silently
// swallowed, since run records are append-only provenance, not
// idempotent upserts.
func (s *Store) RecordRun(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(id, ruleset_hash, width, height, seed, outcome, contradiction_cell, grid, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		r.ID, r.RuleSetHash, r.Width, r.Height, seedValue(r.Seed),
		r.Outcome, contradictionValue(r.Contradiction), r.Grid, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

func seedValue(seed *uint64) any {
	if seed == nil {
		return nil
	}
	// SQLite integers are signed 64-bit; store the seed's bit pattern
	// as an int64 and reinterpret on read (GetRun in read.go) rather than
	// losing the top bit to an overflow error.
	return int64(*seed)
}

func contradictionValue(cell *int) any {
	if cell == nil {
		return nil
	}
	return *cell
}

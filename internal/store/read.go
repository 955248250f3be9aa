package store

import (
	"context"
	"database/sql"
	"fmt"
)

// GetRun looks up a recorded run by id. Returns (nil, nil) if no run
// with that id exists.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, ruleset_hash, width, height, seed, outcome, contradiction_cell, grid, created_at
		FROM runs WHERE id = ?
	`, id)

	var (
		r          Run
		seed       sql.NullInt64
		contraCell sql.NullInt64
	)
	err := row.Scan(&r.ID, &r.RuleSetHash, &r.Width, &r.Height, &seed, &r.Outcome, &contraCell, &r.Grid, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", id, err)
	}

	if seed.Valid {
		u := uint64(seed.Int64)
		r.Seed = &u
	}
	if contraCell.Valid {
		c := int(contraCell.Int64)
		r.Contradiction = &c
	}
	return &r, nil
}

// ListRunsByRuleSetHash returns every run recorded against a given
// ruleset hash, newest first.
func (s *Store) ListRunsByRuleSetHash(ctx context.Context, hash string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ruleset_hash, width, height, seed, outcome, contradiction_cell, grid, created_at
		FROM runs WHERE ruleset_hash = ? ORDER BY created_at DESC
	`, hash)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var (
			r          Run
			seed       sql.NullInt64
			contraCell sql.NullInt64
		)
		if err := rows.Scan(&r.ID, &r.RuleSetHash, &r.Width, &r.Height, &seed, &r.Outcome, &contraCell, &r.Grid, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if seed.Valid {
			u := uint64(seed.Int64)
			r.Seed = &u
		}
		if contraCell.Valid {
			c := int(contraCell.Int64)
			r.Contradiction = &c
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return out, nil
}

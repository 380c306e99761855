package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateRun records the start of a processing run and returns its ID.
func (db *DB) CreateRun(ctx context.Context, kind string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO processing_runs (kind, status)
		 VALUES ($1, $2)
		 RETURNING id`,
		kind, RunStatusRunning,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create processing run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a run finished with the given status and counters.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, total, upserted int) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE processing_runs
		 SET status = $1, profiles_total = $2, profiles_upserted = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, total, upserted, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete processing run: %w", err)
	}
	return nil
}

// GetRun retrieves a processing run by ID. Returns nil when not found.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*ProcessingRun, error) {
	var run ProcessingRun
	err := db.pool.QueryRow(ctx,
		`SELECT id, kind, status, profiles_total, profiles_upserted, started_at, completed_at
		 FROM processing_runs WHERE id = $1`, runID,
	).Scan(&run.ID, &run.Kind, &run.Status, &run.ProfilesTotal, &run.ProfilesUpserted,
		&run.StartedAt, &run.CompletedAt)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get processing run %s: %w", runID, err)
	}
	return &run, nil
}

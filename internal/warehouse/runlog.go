package warehouse

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/shivamkr/orderpipe/pkg/database"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

const runsDDL = `
CREATE TABLE IF NOT EXISTS etl_runs (
    run_id UUID PRIMARY KEY,
    started_at TIMESTAMPTZ NOT NULL,
    finished_at TIMESTAMPTZ NOT NULL,
    year INT,
    rows_in BIGINT NOT NULL,
    rows_out BIGINT NOT NULL,
    duplicates_dropped BIGINT NOT NULL,
    prices_corrected BIGINT NOT NULL,
    status TEXT NOT NULL,
    error TEXT
);
`

// Run is one recorded pipeline execution. Year is nil for runs spanning
// the whole range.
type Run struct {
	RunID             uuid.UUID `json:"run_id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Year              *int      `json:"year,omitempty"`
	RowsIn            int64     `json:"rows_in"`
	RowsOut           int64     `json:"rows_out"`
	DuplicatesDropped int64     `json:"duplicates_dropped"`
	PricesCorrected   int64     `json:"prices_corrected"`
	Status            string    `json:"status"`
	Error             string    `json:"error,omitempty"`
}

// RunRepository persists pipeline run records.
type RunRepository struct {
	db  *database.DB
	log *logger.Logger
}

// NewRunRepository creates a RunRepository.
func NewRunRepository(db *database.DB, log *logger.Logger) *RunRepository {
	return &RunRepository{db: db, log: log}
}

// EnsureSchema creates the run-log table if it does not exist.
func (r *RunRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Pool.Exec(ctx, runsDDL); err != nil {
		return fmt.Errorf("create etl_runs table: %w", err)
	}
	return nil
}

// Record inserts one run record.
func (r *RunRepository) Record(ctx context.Context, run Run) error {
	query := `
		INSERT INTO etl_runs (
			run_id, started_at, finished_at, year,
			rows_in, rows_out, duplicates_dropped, prices_corrected,
			status, error
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Pool.Exec(ctx, query,
		run.RunID, run.StartedAt, run.FinishedAt, run.Year,
		run.RowsIn, run.RowsOut, run.DuplicatesDropped, run.PricesCorrected,
		run.Status, nullIfEmpty(run.Error),
	)
	if err != nil {
		return fmt.Errorf("record run %s: %w", run.RunID, err)
	}

	r.log.WithFields(map[string]interface{}{
		"run_id": run.RunID.String(),
		"status": run.Status,
	}).Info("Pipeline run recorded")

	return nil
}

// Recent returns the most recent runs, newest first.
func (r *RunRepository) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT run_id, started_at, finished_at, year,
		       rows_in, rows_out, duplicates_dropped, prices_corrected,
		       status, COALESCE(error, '')
		FROM etl_runs
		ORDER BY started_at DESC
		LIMIT $1`

	rows, err := r.db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(
			&run.RunID, &run.StartedAt, &run.FinishedAt, &run.Year,
			&run.RowsIn, &run.RowsOut, &run.DuplicatesDropped, &run.PricesCorrected,
			&run.Status, &run.Error,
		); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

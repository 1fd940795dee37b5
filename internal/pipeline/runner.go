// Package pipeline orchestrates the full batch run: clean every yearly
// export, build the master dataset and load the warehouse.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/shivamkr/orderpipe/internal/catalogue"
	"github.com/shivamkr/orderpipe/internal/clean"
	"github.com/shivamkr/orderpipe/internal/dataset"
	"github.com/shivamkr/orderpipe/internal/fetch"
	"github.com/shivamkr/orderpipe/internal/master"
	"github.com/shivamkr/orderpipe/internal/warehouse"
	"github.com/shivamkr/orderpipe/pkg/config"
	"github.com/shivamkr/orderpipe/pkg/database"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

// Runner drives the pipeline stages. The database is optional: without it
// the run stops after the master file is written.
type Runner struct {
	cfg  *config.Config
	log  *logger.Logger
	db   *database.DB
	runs *warehouse.RunRepository
}

// New creates a Runner. db may be nil for file-only runs.
func New(cfg *config.Config, log *logger.Logger, db *database.DB) *Runner {
	r := &Runner{cfg: cfg, log: log, db: db}
	if db != nil {
		r.runs = warehouse.NewRunRepository(db, log)
	}
	return r
}

// loadCatalogue loads the reference price table. A missing or unreadable
// catalogue disables price correction but does not abort the run.
func (r *Runner) loadCatalogue() *catalogue.Catalogue {
	path := r.cfg.CataloguePath()
	cat, err := catalogue.Load(path)
	if err != nil {
		r.log.WithError(err).WithField("path", path).Warn("Catalogue unavailable, price correction disabled")
		return nil
	}
	r.log.WithField("products", cat.Len()).Info("Product catalogue loaded")
	return cat
}

// CleanYear cleans one yearly export and writes the cleaned file.
func (r *Runner) CleanYear(year int) (clean.Stats, error) {
	return r.cleanYear(year, clean.New(r.loadCatalogue(), r.log))
}

func (r *Runner) cleanYear(year int, cleaner *clean.Cleaner) (clean.Stats, error) {
	in := r.cfg.YearFile(year)
	table, err := dataset.ReadFile(in)
	if err != nil {
		return clean.Stats{}, fmt.Errorf("year %d: %w", year, err)
	}

	stats := cleaner.Clean(table)

	out := r.cfg.CleanedYearFile(year)
	if err := table.WriteFile(out); err != nil {
		return clean.Stats{}, fmt.Errorf("year %d: %w", year, err)
	}

	r.log.WithFields(map[string]interface{}{
		"year":               year,
		"rows_in":            stats.RowsIn,
		"rows_out":           stats.RowsOut,
		"duplicates_dropped": stats.DuplicatesDropped,
		"prices_corrected":   stats.PricesCorrected,
	}).Info("Yearly export cleaned")

	return stats, nil
}

// CleanAll cleans every yearly export in the configured range. Years are
// isolated: a missing export is skipped, a failed year is logged and the
// remaining years still run. Errors out only when no year succeeds. When a
// run log is attached, every attempted year gets its own record.
func (r *Runner) CleanAll(ctx context.Context) (clean.Stats, error) {
	cleaner := clean.New(r.loadCatalogue(), r.log)

	var total clean.Stats
	cleaned := 0
	for year := r.cfg.ETL.YearFrom; year <= r.cfg.ETL.YearTo; year++ {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		if _, err := os.Stat(r.cfg.YearFile(year)); errors.Is(err, os.ErrNotExist) {
			r.log.WithField("year", year).Warn("Yearly export missing, skipping")
			continue
		}

		started := time.Now()
		stats, err := r.cleanYear(year, cleaner)
		if r.runs != nil {
			r.recordYearRun(ctx, year, started, stats, err)
		}
		if err != nil {
			r.log.WithError(err).WithField("year", year).Error("Failed to clean year")
			continue
		}

		total.RowsIn += stats.RowsIn
		total.RowsOut += stats.RowsOut
		total.DuplicatesDropped += stats.DuplicatesDropped
		total.PricesCorrected += stats.PricesCorrected
		total.PricesFilled += stats.PricesFilled
		total.DeliveryFilled += stats.DeliveryFilled
		cleaned++
	}

	if cleaned == 0 {
		return total, errors.New("no yearly exports could be cleaned")
	}
	return total, nil
}

// BuildMaster concatenates the cleaned yearly files into the master file.
func (r *Runner) BuildMaster() (int, error) {
	return master.New(r.cfg, r.log).Build()
}

// Run executes the whole pipeline: fetch fresh exports when a base URL is
// configured, clean all years, build the master file and, when a database
// is attached, load staging, rebuild the star schema and record the run.
func (r *Runner) Run(ctx context.Context) error {
	started := time.Now()

	if r.cfg.Fetch.BaseURL != "" {
		if _, err := fetch.New(r.cfg, r.log).FetchAll(ctx); err != nil {
			return fmt.Errorf("fetch exports: %w", err)
		}
	}

	stats, err := r.CleanAll(ctx)
	if err == nil {
		_, err = r.BuildMaster()
	}
	if err == nil && r.db != nil {
		err = r.loadWarehouse(ctx)
	}

	if r.runs != nil {
		r.recordRun(ctx, started, stats, err)
	}
	if err != nil {
		return err
	}

	r.log.WithField("duration", time.Since(started)).Info("Pipeline run completed")
	return nil
}

func (r *Runner) loadWarehouse(ctx context.Context) error {
	loader := warehouse.NewLoader(r.db, r.log)
	if _, err := loader.Load(ctx, r.cfg.MasterFile()); err != nil {
		return err
	}
	if err := warehouse.BuildStarSchema(ctx, r.db, r.log); err != nil {
		return err
	}

	counts, err := warehouse.Validate(ctx, r.db)
	if err != nil {
		return err
	}
	for _, c := range counts {
		r.log.WithFields(map[string]interface{}{
			"table": c.Table,
			"count": c.Count,
		}).Info("Warehouse table count")
	}
	return nil
}

func (r *Runner) recordYearRun(ctx context.Context, year int, started time.Time, stats clean.Stats, runErr error) {
	if err := r.runs.EnsureSchema(ctx); err != nil {
		r.log.WithError(err).Error("Failed to ensure run-log schema")
		return
	}

	run := warehouse.Run{
		RunID:             uuid.New(),
		StartedAt:         started,
		FinishedAt:        time.Now(),
		Year:              &year,
		RowsIn:            int64(stats.RowsIn),
		RowsOut:           int64(stats.RowsOut),
		DuplicatesDropped: int64(stats.DuplicatesDropped),
		PricesCorrected:   int64(stats.PricesCorrected),
		Status:            "success",
	}
	if runErr != nil {
		run.Status = "failed"
		run.Error = runErr.Error()
	}

	if err := r.runs.Record(ctx, run); err != nil {
		r.log.WithError(err).Error("Failed to record year run")
	}
}

func (r *Runner) recordRun(ctx context.Context, started time.Time, stats clean.Stats, runErr error) {
	if err := r.runs.EnsureSchema(ctx); err != nil {
		r.log.WithError(err).Error("Failed to ensure run-log schema")
		return
	}

	run := warehouse.Run{
		RunID:             uuid.New(),
		StartedAt:         started,
		FinishedAt:        time.Now(),
		RowsIn:            int64(stats.RowsIn),
		RowsOut:           int64(stats.RowsOut),
		DuplicatesDropped: int64(stats.DuplicatesDropped),
		PricesCorrected:   int64(stats.PricesCorrected),
		Status:            "success",
	}
	if runErr != nil {
		run.Status = "failed"
		run.Error = runErr.Error()
	}

	if err := r.runs.Record(ctx, run); err != nil {
		r.log.WithError(err).Error("Failed to record pipeline run")
	}
}

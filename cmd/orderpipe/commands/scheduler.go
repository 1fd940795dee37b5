package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivamkr/orderpipe/internal/pipeline"
	"github.com/shivamkr/orderpipe/internal/scheduler"
	"github.com/shivamkr/orderpipe/internal/scheduler/jobs"
	"github.com/shivamkr/orderpipe/pkg/database"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Manage scheduled pipeline runs",
	Long: `Starts the scheduler daemon or manages its jobs.

Subcommands:
  start   - start the scheduler daemon
  list    - list registered jobs
  run     - trigger a job immediately

Example:
  go run ./cmd/orderpipe scheduler start
  go run ./cmd/orderpipe scheduler list
  go run ./cmd/orderpipe scheduler run pipeline`,
}

var (
	schedulerStartCmd = &cobra.Command{
		Use:   "start",
		Short: "Start the scheduler daemon",
		Long: `Starts the scheduler and registers the pipeline job on its
configured cron schedule (SCHEDULER_PIPELINE_CRON, nightly by default).
Stop with Ctrl+C.`,
		RunE: runScheduler,
	}

	schedulerListCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered jobs",
		RunE:  listJobs,
	}

	schedulerRunCmd = &cobra.Command{
		Use:   "run [job_name]",
		Short: "Trigger a job immediately",
		Args:  cobra.ExactArgs(1),
		RunE:  runJob,
	}
)

func init() {
	rootCmd.AddCommand(schedulerCmd)
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	schedulerCmd.AddCommand(schedulerRunCmd)
}

// initScheduler wires the scheduler with all jobs.
func initScheduler() (*scheduler.Scheduler, *database.DB, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	// Run without the warehouse when no database is configured.
	var db *database.DB
	if cfg.Database.URL != "" {
		db, err = database.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
	} else {
		log.Warn("DATABASE_URL not set, scheduled runs stop at the master file")
	}

	runner := pipeline.New(cfg, log, db)

	s := scheduler.New(log)
	if err := s.AddJob(jobs.NewPipelineJob(runner, cfg, log)); err != nil {
		if db != nil {
			db.Close()
		}
		return nil, nil, err
	}

	return s, db, nil
}

func runScheduler(cmd *cobra.Command, args []string) error {
	fmt.Println("=== orderpipe Scheduler ===")

	s, db, err := initScheduler()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	s.Start()
	fmt.Println("✅ Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	s.Stop()
	return nil
}

func listJobs(cmd *cobra.Command, args []string) error {
	s, db, err := initScheduler()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	fmt.Println("📋 Registered jobs:")
	for name, stats := range s.GetJobStats() {
		fmt.Printf("   %-12s schedule: %s\n", name, stats.Schedule)
	}
	return nil
}

func runJob(cmd *cobra.Command, args []string) error {
	s, db, err := initScheduler()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	jobName := args[0]
	if err := s.RunJob(jobName); err != nil {
		return err
	}

	fmt.Printf("▶ Job %s started\n", jobName)

	// Poll history until the triggered run lands.
	for {
		time.Sleep(500 * time.Millisecond)
		history, err := s.GetJobHistory(jobName)
		if err != nil {
			return err
		}
		if len(history.Results) == 0 {
			continue
		}

		result := history.Results[len(history.Results)-1]
		if result.Success {
			fmt.Printf("✅ Job %s completed in %v\n", jobName, result.Duration)
			return nil
		}
		return fmt.Errorf("job %s failed: %s", jobName, result.Error)
	}
}

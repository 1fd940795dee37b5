package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shivamkr/orderpipe/internal/pipeline"
	"github.com/shivamkr/orderpipe/pkg/database"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline",
	Long: `Runs the whole batch pipeline: clean every yearly export, build
the master dataset and, unless --skip-db is set, load the warehouse and
rebuild the star schema. Each run is recorded in etl_runs.

Example:
  go run ./cmd/orderpipe run
  go run ./cmd/orderpipe run --skip-db`,
	RunE: runPipeline,
}

var skipDB bool

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&skipDB, "skip-db", false, "stop after writing the master file")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	var db *database.DB
	if !skipDB {
		db, err = database.New(cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
	}

	if err := pipeline.New(cfg, log, db).Run(cmd.Context()); err != nil {
		return err
	}

	fmt.Println("✅ Pipeline run completed")
	return nil
}

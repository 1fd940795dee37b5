package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shivamkr/orderpipe/internal/master"
)

// masterCmd represents the master command
var masterCmd = &cobra.Command{
	Use:   "master",
	Short: "Concatenate cleaned years into the master dataset",
	Long: `Concatenates every cleaned yearly file in the configured range
into one master CSV. Missing years are skipped with a warning; a header
layout that drifted between years aborts the build.

Example:
  go run ./cmd/orderpipe master`,
	RunE: runMaster,
}

func init() {
	rootCmd.AddCommand(masterCmd)
}

func runMaster(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	rows, err := master.New(cfg, log).Build()
	if err != nil {
		return err
	}

	fmt.Printf("✅ Master dataset created: %s (%d rows)\n", cfg.MasterFile(), rows)
	return nil
}

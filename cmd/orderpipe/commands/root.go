package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	dataDir  string
	yearFrom int
	yearTo   int
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "orderpipe",
	Short: "Batch ETL for yearly order exports",
	Long: `orderpipe cleans yearly e-commerce order exports, resolves
duplicates, corrects price outliers against the product catalogue,
concatenates all years into a master dataset and loads it into a
PostgreSQL star schema.

Usage:
  go run ./cmd/orderpipe [command]

Examples:
  go run ./cmd/orderpipe clean 2023
  go run ./cmd/orderpipe run
  go run ./cmd/orderpipe warehouse load
  go run ./cmd/orderpipe api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "data directory (default from ETL_DATA_DIR)")
	rootCmd.PersistentFlags().IntVar(&yearFrom, "year-from", 0, "first year of the range (default from ETL_YEAR_FROM)")
	rootCmd.PersistentFlags().IntVar(&yearTo, "year-to", 0, "last year of the range (default from ETL_YEAR_TO)")
}

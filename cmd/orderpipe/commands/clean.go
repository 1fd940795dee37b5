package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shivamkr/orderpipe/internal/pipeline"
)

// cleanCmd represents the clean command
var cleanCmd = &cobra.Command{
	Use:   "clean [year]",
	Short: "Clean yearly order exports",
	Long: `Cleans yearly export files: field normalization, median fills,
duplicate resolution and catalogue price correction. Writes one
<prefix>_<year>_cleaned.csv per input file.

With a year argument only that year is cleaned; without one the whole
configured range runs, skipping missing files.

Example:
  go run ./cmd/orderpipe clean
  go run ./cmd/orderpipe clean 2023`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	runner := pipeline.New(cfg, log, nil)

	if len(args) == 1 {
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid year %q", args[0])
		}

		stats, err := runner.CleanYear(year)
		if err != nil {
			return err
		}
		printStats(fmt.Sprintf("Year %d cleaned", year), stats.RowsIn, stats.RowsOut, stats.DuplicatesDropped, stats.PricesCorrected)
		return nil
	}

	stats, err := runner.CleanAll(cmd.Context())
	if err != nil {
		return err
	}
	printStats("All years cleaned", stats.RowsIn, stats.RowsOut, stats.DuplicatesDropped, stats.PricesCorrected)
	return nil
}

func printStats(title string, rowsIn, rowsOut, dupes, corrected int) {
	fmt.Printf("✅ %s\n", title)
	fmt.Printf("   Rows in:            %d\n", rowsIn)
	fmt.Printf("   Rows out:           %d\n", rowsOut)
	fmt.Printf("   Duplicates dropped: %d\n", dupes)
	fmt.Printf("   Prices corrected:   %d\n", corrected)
}

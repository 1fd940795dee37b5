package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shivamkr/orderpipe/internal/fetch"
)

// fetchCmd represents the fetch command
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download export files from the publishing server",
	Long: `Downloads every yearly export in the configured range plus the
product catalogue from FETCH_BASE_URL into the data directory. Years
the server has not published are skipped.

Example:
  go run ./cmd/orderpipe fetch`,
	RunE: runFetch,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}

	fetched, err := fetch.New(cfg, log).FetchAll(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("✅ Downloaded %d files into %s\n", fetched, cfg.ETL.DataDir)
	return nil
}

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shivamkr/orderpipe/internal/warehouse"
	"github.com/shivamkr/orderpipe/pkg/config"
	"github.com/shivamkr/orderpipe/pkg/database"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

// warehouseCmd represents the warehouse command
var warehouseCmd = &cobra.Command{
	Use:   "warehouse",
	Short: "Manage the PostgreSQL warehouse",
	Long: `Loads the master dataset into staging, rebuilds the star schema
and validates table counts.

Subcommands:
  load      - COPY the master CSV into staging_raw
  schema    - rebuild dimensions and the fact table from staging
  validate  - print row counts of all warehouse tables

Example:
  go run ./cmd/orderpipe warehouse load
  go run ./cmd/orderpipe warehouse schema
  go run ./cmd/orderpipe warehouse validate`,
}

var (
	warehouseLoadCmd = &cobra.Command{
		Use:   "load",
		Short: "Load the master dataset into staging",
		RunE:  runWarehouseLoad,
	}

	warehouseSchemaCmd = &cobra.Command{
		Use:   "schema",
		Short: "Rebuild the star schema from staging",
		RunE:  runWarehouseSchema,
	}

	warehouseValidateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Print warehouse table counts",
		RunE:  runWarehouseValidate,
	}
)

func init() {
	rootCmd.AddCommand(warehouseCmd)
	warehouseCmd.AddCommand(warehouseLoadCmd)
	warehouseCmd.AddCommand(warehouseSchemaCmd)
	warehouseCmd.AddCommand(warehouseValidateCmd)
}

func connect() (*config.Config, *logger.Logger, *database.DB, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	db, err := database.New(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect to database: %w", err)
	}
	return cfg, log, db, nil
}

func runWarehouseLoad(cmd *cobra.Command, args []string) error {
	cfg, log, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := warehouse.NewLoader(db, log).Load(cmd.Context(), cfg.MasterFile())
	if err != nil {
		return err
	}

	fmt.Printf("✅ Loaded %d rows into staging_raw\n", rows)
	return nil
}

func runWarehouseSchema(cmd *cobra.Command, args []string) error {
	_, log, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	if err := warehouse.BuildStarSchema(cmd.Context(), db, log); err != nil {
		return err
	}

	fmt.Println("✅ Star schema built")
	return nil
}

func runWarehouseValidate(cmd *cobra.Command, args []string) error {
	_, _, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	counts, err := warehouse.Validate(cmd.Context(), db)
	if err != nil {
		return err
	}

	fmt.Println("📊 Warehouse table counts:")
	for _, c := range counts {
		fmt.Printf("   %-15s : %d\n", c.Table, c.Count)
	}
	return nil
}

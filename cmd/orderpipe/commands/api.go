package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shivamkr/orderpipe/internal/api"
	"github.com/shivamkr/orderpipe/internal/api/handlers"
	"github.com/shivamkr/orderpipe/internal/warehouse"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "Start the status API server",
	Long: `Starts the REST status API.

Endpoints:
  GET  /health                 - Health check
  GET  /api/warehouse/counts   - Warehouse table counts
  GET  /api/runs               - Recent pipeline runs

Example:
  go run ./cmd/orderpipe api
  go run ./cmd/orderpipe api --port 8086`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API server port (default from PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== orderpipe API Server ===")

	cfg, log, db, err := connect()
	if err != nil {
		return err
	}
	defer db.Close()

	if apiPort != "" {
		cfg.Port = apiPort
	}

	runs := warehouse.NewRunRepository(db, log)
	if err := runs.EnsureSchema(cmd.Context()); err != nil {
		return err
	}

	statusHandler := handlers.NewStatusHandler(db, runs, log)
	router := api.NewRouter(statusHandler, log)
	server := api.New(cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  GET  /api/warehouse/counts")
	fmt.Println("  GET  /api/runs")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}

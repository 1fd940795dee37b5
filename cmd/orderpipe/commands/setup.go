package commands

import (
	"fmt"

	"github.com/shivamkr/orderpipe/pkg/config"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

// loadConfig loads the environment config and applies global flag overrides.
func loadConfig() (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	if dataDir != "" {
		cfg.ETL.DataDir = dataDir
	}
	if yearFrom != 0 {
		cfg.ETL.YearFrom = yearFrom
	}
	if yearTo != 0 {
		cfg.ETL.YearTo = yearTo
	}
	if cfg.ETL.YearFrom > cfg.ETL.YearTo {
		return nil, nil, fmt.Errorf("year range %d-%d is inverted", cfg.ETL.YearFrom, cfg.ETL.YearTo)
	}

	return cfg, logger.New(cfg), nil
}

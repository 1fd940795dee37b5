package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
// Every environment variable is read here and nowhere else.
type Config struct {
	// Server
	Port string
	Env  string // development, staging, production

	// Database
	Database DatabaseConfig

	// Pipeline
	ETL ETLConfig

	// Export fetcher
	Fetch FetchConfig

	// Scheduler
	Scheduler SchedulerConfig

	// Logging
	LogLevel  string
	LogFormat string
}

// DatabaseConfig holds PostgreSQL configuration for the warehouse sink.
type DatabaseConfig struct {
	URL string

	// Connection Pool
	MaxConns        int
	MinConns        int
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// ETLConfig holds the file layout and year range of the batch pipeline.
type ETLConfig struct {
	// DataDir is where yearly exports, cleaned files and the master file live.
	DataDir string

	// FilePrefix names the yearly export files: <prefix>_<year>.csv
	FilePrefix string

	// YearFrom and YearTo bound the inclusive range of yearly datasets.
	YearFrom int
	YearTo   int

	// CatalogueFile is the reference price table, relative to DataDir
	// unless absolute.
	CatalogueFile string
}

// FetchConfig holds settings for downloading export files.
type FetchConfig struct {
	// BaseURL is the remote directory the yearly exports are published
	// under. Empty disables the fetch stage.
	BaseURL string

	// RatePerSec and Burst bound the download request rate.
	RatePerSec float64
	Burst      int
}

// SchedulerConfig holds cron schedules for unattended runs.
type SchedulerConfig struct {
	// PipelineCron is the schedule of the full pipeline job (with seconds).
	PipelineCron string
}

// Load reads configuration from environment variables.
// This is the only function that calls os.Getenv().
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Port: getEnv("PORT", "8086"),
		Env:  getEnv("ENV", "development"),

		Database: DatabaseConfig{
			URL:             getEnv("DATABASE_URL", ""),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 10),
			MinConns:        getEnvAsInt("DB_MIN_CONNS", 2),
			MaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", "1h"),
			MaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", "30m"),
		},

		ETL: ETLConfig{
			DataDir:       getEnv("ETL_DATA_DIR", "./data"),
			FilePrefix:    getEnv("ETL_FILE_PREFIX", "amazon_india"),
			YearFrom:      getEnvAsInt("ETL_YEAR_FROM", 2015),
			YearTo:        getEnvAsInt("ETL_YEAR_TO", 2025),
			CatalogueFile: getEnv("ETL_CATALOGUE_FILE", "amazon_india_products_catalog.csv"),
		},

		Fetch: FetchConfig{
			BaseURL:    getEnv("FETCH_BASE_URL", ""),
			RatePerSec: getEnvAsFloat("FETCH_RATE_PER_SEC", 2.0),
			Burst:      getEnvAsInt("FETCH_BURST", 1),
		},

		Scheduler: SchedulerConfig{
			PipelineCron: getEnv("SCHEDULER_PIPELINE_CRON", "0 0 2 * * *"),
		},

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks if required configuration values are set.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.ETL.DataDir == "" {
		return fmt.Errorf("ETL_DATA_DIR is required")
	}

	if c.ETL.YearFrom > c.ETL.YearTo {
		return fmt.Errorf("ETL_YEAR_FROM (%d) must not be after ETL_YEAR_TO (%d)", c.ETL.YearFrom, c.ETL.YearTo)
	}

	return nil
}

// YearFile returns the path of a raw yearly export inside DataDir.
func (c *Config) YearFile(year int) string {
	return filepath.Join(c.ETL.DataDir, fmt.Sprintf("%s_%d.csv", c.ETL.FilePrefix, year))
}

// CleanedYearFile returns the path a cleaned yearly dataset is written to.
func (c *Config) CleanedYearFile(year int) string {
	return filepath.Join(c.ETL.DataDir, fmt.Sprintf("%s_%d_cleaned.csv", c.ETL.FilePrefix, year))
}

// MasterFile returns the path of the concatenated master dataset.
func (c *Config) MasterFile() string {
	return filepath.Join(c.ETL.DataDir, fmt.Sprintf("%s_master_%d_%d.csv", c.ETL.FilePrefix, c.ETL.YearFrom, c.ETL.YearTo))
}

// CataloguePath resolves the catalogue file against DataDir.
func (c *Config) CataloguePath() string {
	if filepath.IsAbs(c.ETL.CatalogueFile) {
		return c.ETL.CatalogueFile
	}
	return filepath.Join(c.ETL.DataDir, c.ETL.CatalogueFile)
}

// Helper functions (private, only used within this file)

// loadEnvFile tries to load .env from multiple locations
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}

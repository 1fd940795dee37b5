package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8086", cfg.Port)
	assert.Equal(t, 2015, cfg.ETL.YearFrom)
	assert.Equal(t, 2025, cfg.ETL.YearTo)
	assert.Equal(t, "amazon_india", cfg.ETL.FilePrefix)
	assert.NotEmpty(t, cfg.ETL.DataDir)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("ETL_DATA_DIR", "/srv/exports")
	t.Setenv("ETL_YEAR_FROM", "2018")
	t.Setenv("ETL_YEAR_TO", "2020")
	t.Setenv("DB_MAX_CONNS", "3")
	t.Setenv("FETCH_RATE_PER_SEC", "0.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/srv/exports", cfg.ETL.DataDir)
	assert.Equal(t, 2018, cfg.ETL.YearFrom)
	assert.Equal(t, 2020, cfg.ETL.YearTo)
	assert.Equal(t, 3, cfg.Database.MaxConns)
	assert.InDelta(t, 0.5, cfg.Fetch.RatePerSec, 1e-9)
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("ENV", "sandbox")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENV must be one of")
}

func TestLoad_InvalidYearRange(t *testing.T) {
	t.Setenv("ETL_YEAR_FROM", "2024")
	t.Setenv("ETL_YEAR_TO", "2016")

	_, err := Load()
	require.Error(t, err)
}

func TestConfig_Paths(t *testing.T) {
	t.Setenv("ETL_DATA_DIR", "/data")
	t.Setenv("ETL_FILE_PREFIX", "orders")
	t.Setenv("ETL_YEAR_FROM", "2015")
	t.Setenv("ETL_YEAR_TO", "2025")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/orders_2019.csv", cfg.YearFile(2019))
	assert.Equal(t, "/data/orders_2019_cleaned.csv", cfg.CleanedYearFile(2019))
	assert.Equal(t, "/data/orders_master_2015_2025.csv", cfg.MasterFile())
	assert.Equal(t, "/data/amazon_india_products_catalog.csv", cfg.CataloguePath())

	t.Setenv("ETL_CATALOGUE_FILE", "/ref/catalog.csv")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "/ref/catalog.csv", cfg.CataloguePath())
}

package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamkr/orderpipe/pkg/config"
)

func TestNew_MissingURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = New(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL is required")
}

func TestNew_InvalidURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "://not-a-url")

	cfg, err := config.Load()
	require.NoError(t, err)

	_, err = New(cfg)
	require.Error(t, err)
}

// TestNew_Connect exercises a real connection. It is skipped unless
// ORDERPIPE_TEST_DATABASE_URL points at a reachable PostgreSQL instance.
func TestNew_Connect(t *testing.T) {
	url := os.Getenv("ORDERPIPE_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ORDERPIPE_TEST_DATABASE_URL not set")
	}
	t.Setenv("DATABASE_URL", url)

	cfg, err := config.Load()
	require.NoError(t, err)

	db, err := New(cfg)
	require.NoError(t, err)
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, db.Ping(ctx))

	status, err := db.HealthCheck(ctx)
	require.NoError(t, err)
	assert.True(t, status.Healthy)
	assert.Greater(t, status.Stats.MaxConns, int32(0))
}

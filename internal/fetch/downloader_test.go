package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shivamkr/orderpipe/pkg/config"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

func setup(t *testing.T, baseURL string) *Downloader {
	t.Helper()
	t.Setenv("ETL_DATA_DIR", t.TempDir())
	t.Setenv("ETL_YEAR_FROM", "2015")
	t.Setenv("ETL_YEAR_TO", "2016")
	t.Setenv("FETCH_BASE_URL", baseURL)
	t.Setenv("FETCH_RATE_PER_SEC", "1000")
	t.Setenv("LOG_FORMAT", "console")
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := config.Load()
	require.NoError(t, err)
	return New(cfg, logger.New(cfg))
}

func TestFetchAll(t *testing.T) {
	files := map[string]string{
		"/amazon_india_2015.csv":             "order_id\nA\n",
		"/amazon_india_2016.csv":             "order_id\nB\n",
		"/amazon_india_products_catalog.csv": "product_id,base_price_2015\nP1,100\n",
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := files[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	d := setup(t, server.URL)

	fetched, err := d.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, fetched)

	data, err := os.ReadFile(d.cfg.YearFile(2015))
	require.NoError(t, err)
	assert.Equal(t, "order_id\nA\n", string(data))

	_, err = os.Stat(d.cfg.CataloguePath())
	require.NoError(t, err)
}

func TestFetchAll_UnpublishedYearSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/amazon_india_2015.csv" {
			_, _ = w.Write([]byte("order_id\nA\n"))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	d := setup(t, server.URL)

	fetched, err := d.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, fetched)

	_, err = os.Stat(d.cfg.YearFile(2016))
	assert.True(t, os.IsNotExist(err))
}

func TestFetchAll_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	d := setup(t, server.URL)

	_, err := d.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 403")
}

func TestFetchAll_NoBaseURL(t *testing.T) {
	d := setup(t, "")

	_, err := d.FetchAll(context.Background())
	require.Error(t, err)
}

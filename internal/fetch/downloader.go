// Package fetch downloads yearly export files and the product catalogue
// from a remote publishing directory into the local data directory.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/shivamkr/orderpipe/pkg/config"
	"github.com/shivamkr/orderpipe/pkg/httputil"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

// Downloader fetches export files over HTTP.
type Downloader struct {
	cfg    *config.Config
	log    *logger.Logger
	client *httputil.Client
}

// New creates a Downloader. Requests are rate limited per the fetch config.
func New(cfg *config.Config, log *logger.Logger) *Downloader {
	client := httputil.New(cfg, log).
		WithRateLimit(cfg.Fetch.RatePerSec, cfg.Fetch.Burst)
	return &Downloader{cfg: cfg, log: log, client: client}
}

// FetchAll downloads every yearly export in the configured range plus the
// catalogue. A year that is not published (404) is logged and skipped; any
// other failure aborts. Returns the number of files written.
func (d *Downloader) FetchAll(ctx context.Context) (int, error) {
	if d.cfg.Fetch.BaseURL == "" {
		return 0, fmt.Errorf("FETCH_BASE_URL is not configured")
	}

	if err := os.MkdirAll(d.cfg.ETL.DataDir, 0o755); err != nil {
		return 0, fmt.Errorf("create data dir: %w", err)
	}

	fetched := 0
	for year := d.cfg.ETL.YearFrom; year <= d.cfg.ETL.YearTo; year++ {
		name := fmt.Sprintf("%s_%d.csv", d.cfg.ETL.FilePrefix, year)
		ok, err := d.fetchFile(ctx, name, d.cfg.YearFile(year))
		if err != nil {
			return fetched, err
		}
		if ok {
			fetched++
		}
	}

	catName := path.Base(filepath.ToSlash(d.cfg.ETL.CatalogueFile))
	ok, err := d.fetchFile(ctx, catName, d.cfg.CataloguePath())
	if err != nil {
		return fetched, err
	}
	if ok {
		fetched++
	}

	return fetched, nil
}

// fetchFile downloads one file. Returns false without error when the
// remote has no such file.
func (d *Downloader) fetchFile(ctx context.Context, name, dest string) (bool, error) {
	url := d.cfg.Fetch.BaseURL + "/" + name

	resp, err := d.client.Get(ctx, url)
	if err != nil {
		return false, fmt.Errorf("fetch %s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		d.log.WithField("file", name).Warn("File not published, skipping")
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("fetch %s: unexpected status %d", name, resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return false, fmt.Errorf("create %s: %w", dest, err)
	}

	written, err := io.Copy(f, resp.Body)
	if err != nil {
		f.Close()
		return false, fmt.Errorf("write %s: %w", dest, err)
	}
	if err := f.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", dest, err)
	}

	d.log.WithFields(map[string]interface{}{
		"file":  name,
		"bytes": written,
	}).Info("File downloaded")

	return true, nil
}

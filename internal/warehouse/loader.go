package warehouse

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/shivamkr/orderpipe/pkg/database"
	"github.com/shivamkr/orderpipe/pkg/logger"
)

var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// Loader streams the master CSV into the staging table with COPY.
type Loader struct {
	db  *database.DB
	log *logger.Logger
}

// NewLoader creates a Loader.
func NewLoader(db *database.DB, log *logger.Logger) *Loader {
	return &Loader{db: db, log: log}
}

// Load recreates staging_raw and copies the master file into it. The COPY
// column list comes from the CSV header, so the file may carry the staging
// columns in any order. Returns the number of rows copied.
func (l *Loader) Load(ctx context.Context, path string) (int64, error) {
	columns, err := readHeader(path)
	if err != nil {
		return 0, err
	}

	if err := CreateStaging(ctx, l.db); err != nil {
		return 0, err
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open master file: %w", err)
	}
	defer f.Close()

	conn, err := l.db.Pool.Acquire(ctx)
	if err != nil {
		return 0, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	copySQL := fmt.Sprintf(
		"COPY staging_raw (%s) FROM STDIN WITH CSV HEADER DELIMITER ','",
		strings.Join(columns, ", "),
	)

	tag, err := conn.Conn().PgConn().CopyFrom(ctx, bufio.NewReader(f), copySQL)
	if err != nil {
		return 0, fmt.Errorf("copy into staging_raw: %w", err)
	}

	l.log.WithFields(map[string]interface{}{
		"rows": tag.RowsAffected(),
		"path": path,
	}).Info("Master dataset loaded into staging")

	return tag.RowsAffected(), nil
}

// readHeader returns the CSV header as a COPY-safe column list. Header
// names are interpolated into the COPY statement, so anything that is not
// a plain lower-case identifier is rejected.
func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open master file: %w", err)
	}
	defer f.Close()

	header, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("read master header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))
		if !identifierPattern.MatchString(name) {
			return nil, fmt.Errorf("unsafe column name %q in master header", name)
		}
		columns[i] = name
	}
	return columns, nil
}

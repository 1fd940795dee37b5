package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrUnsupportedFormat is returned when an input file is not CSV or XLSX.
var ErrUnsupportedFormat = errors.New("unsupported file format")

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

// Table is an in-memory record-oriented dataset with named columns.
// Every row is padded to the header width; cells are raw strings until a
// cleaning stage writes canonical values back.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Column returns the index of a named column.
func (t *Table) Column(name string) (int, bool) {
	for i, h := range t.Headers {
		if h == name {
			return i, true
		}
	}
	return 0, false
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// Append adds another table's rows to this one. The other table must carry
// an identical header row; yearly exports that drifted in layout are a
// dataset-level error, not something to silently reconcile.
func (t *Table) Append(other *Table) error {
	if len(t.Headers) != len(other.Headers) {
		return fmt.Errorf("header width mismatch: %d vs %d columns", len(t.Headers), len(other.Headers))
	}
	for i, h := range t.Headers {
		if other.Headers[i] != h {
			return fmt.Errorf("header mismatch at column %d: %q vs %q", i, h, other.Headers[i])
		}
	}
	t.Rows = append(t.Rows, other.Rows...)
	return nil
}

// ReadFile loads a table from a CSV or XLSX file, dispatching on extension.
func ReadFile(path string) (*Table, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv":
		return ReadCSV(bytes.NewReader(payload))
	case ".xlsx":
		return readXLSX(payload)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// ReadCSV loads a table from CSV data. A UTF-8 BOM is peeled off if present
// and ragged rows are tolerated (padded or truncated to the header width).
func ReadCSV(r io.Reader) (*Table, error) {
	buffered := bufio.NewReader(r)
	if prefix, err := buffered.Peek(len(byteOrderMark)); err == nil && bytes.Equal(prefix, byteOrderMark) {
		_, _ = buffered.Discard(len(byteOrderMark))
	}

	csvReader := csv.NewReader(buffered)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return fromRecords(records)
}

func readXLSX(payload []byte) (*Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("xlsx file has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from xlsx: %w", err)
	}

	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, errors.New("no rows found in file")
	}

	var headers []string
	var dataRows [][]string

	for _, row := range records {
		if isEmptyRow(row) {
			continue
		}
		if headers == nil {
			headers = make([]string, len(row))
			for i, cell := range row {
				headers[i] = strings.TrimSpace(cell)
			}
			continue
		}
		dataRows = append(dataRows, padRow(row, len(headers)))
	}

	if headers == nil {
		return nil, errors.New("header row could not be detected")
	}

	return &Table{Headers: headers, Rows: dataRows}, nil
}

// WriteCSV writes the table as CSV, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write(t.Headers); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := csvWriter.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	csvWriter.Flush()
	return csvWriter.Error()
}

// WriteFile writes the table as a CSV file.
func (t *Table) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	if err := t.WriteCSV(f); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func padRow(row []string, length int) []string {
	if len(row) >= length {
		return row[:length]
	}
	padded := make([]string, length)
	copy(padded, row)
	return padded
}

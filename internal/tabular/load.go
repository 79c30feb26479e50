package tabular

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// sniffLen is how much of the file is read for format detection.
const sniffLen = 512

// Load reads the file at path, detects its format, and parses it into a
// Table. Files that are neither delimited text nor an XLSX workbook fail
// with *FormatError. Parse failures inside a recognized format (ragged CSV
// rows, corrupt workbook) propagate as-is.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := f.Read(head)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	head = head[:n]

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", path, err)
	}

	var tbl *Table
	switch SniffFormat(head) {
	case FormatDelimited:
		tbl, err = ParseDelimited(f)
	case FormatSpreadsheet:
		tbl, err = ParseSpreadsheet(f)
	default:
		return nil, &FormatError{Path: path, Reason: "not a delimited text file or spreadsheet"}
	}
	if err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) && ferr.Path == "" {
			ferr.Path = path
		}
		return nil, err
	}

	if err := coerceTensorColumns(tbl); err != nil {
		var ferr *FormatError
		if errors.As(err, &ferr) {
			ferr.Path = path
		}
		return nil, err
	}
	return tbl, nil
}

// coerceTensorColumns verifies that every cell in the present tensor-component
// columns parses as a 64-bit float, and normalizes the cell to the canonical
// strconv form. Missing tensor columns are left for schema projection to
// report, so the user sees the full missing set at once.
func coerceTensorColumns(t *Table) error {
	for _, name := range TensorColumns {
		idx := t.ColumnIndex(name)
		if idx < 0 {
			continue
		}
		for r, row := range t.Rows {
			if idx >= len(row) {
				return &FormatError{Reason: fmt.Sprintf("row %d: missing cell for column %q", r+1, name)}
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[idx]), 64)
			if err != nil {
				return &FormatError{Reason: fmt.Sprintf("row %d: column %q: non-numeric value %q", r+1, name, row[idx])}
			}
			row[idx] = strconv.FormatFloat(v, 'g', -1, 64)
		}
	}
	return nil
}

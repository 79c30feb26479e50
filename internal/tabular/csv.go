package tabular

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseDelimited parses comma-delimited text into a Table. The first record
// is the header. Malformed CSV content (ragged rows, bad quoting) is a parse
// error, not a format-detection miss, and propagates as-is.
func ParseDelimited(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &FormatError{Reason: "empty delimited file"}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make([]string, len(header))
	for i, c := range header {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(c, "\uFEFF"))
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, rec)
	}

	return &Table{Columns: cols, Rows: rows}, nil
}

// Package tabular provides format-agnostic loading of tabular moment-tensor
// files. It sniffs the file format (delimited text or spreadsheet), dispatches
// to the matching parser, and coerces tensor-component cells to float64.
package tabular

import (
	"fmt"
	"strings"
)

// Table is a raw parsed table: a header row plus string cells.
// Column order follows the input file.
type Table struct {
	Columns []string
	Rows    [][]string
}

// TensorColumns are the six moment-tensor components. Cells in these columns
// must parse as 64-bit floats; anything else is a hard load failure.
var TensorColumns = []string{"mrr", "mtt", "mpp", "mrt", "mrp", "mtp"}

// ColumnIndex returns the index of the named column, or -1 if absent.
// Column name comparison is case-insensitive.
func (t *Table) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if strings.EqualFold(c, name) {
			return i
		}
	}
	return -1
}

// Column returns all cell values for the named column in row order.
// The second return value is false if the column is absent.
func (t *Table) Column(name string) ([]string, bool) {
	idx := t.ColumnIndex(name)
	if idx < 0 {
		return nil, false
	}
	vals := make([]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		if idx < len(row) {
			vals = append(vals, row[idx])
		} else {
			vals = append(vals, "")
		}
	}
	return vals, true
}

// FormatError reports an unparseable file or a parseable file that does not
// conform to the required moment-tensor schema.
type FormatError struct {
	// Path is the offending file, empty for non-file inputs.
	Path string
	// Reason describes the failure.
	Reason string
	// MissingColumns lists all required columns absent from the input.
	// Empty unless the failure is a schema violation.
	MissingColumns []string
}

func (e *FormatError) Error() string {
	if len(e.MissingColumns) > 0 {
		if e.Path != "" {
			return fmt.Sprintf("%s: missing required columns: %s", e.Path, strings.Join(e.MissingColumns, ", "))
		}
		return fmt.Sprintf("missing required columns: %s", strings.Join(e.MissingColumns, ", "))
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}
	return e.Reason
}

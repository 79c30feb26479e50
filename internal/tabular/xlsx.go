package tabular

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ParseSpreadsheet parses an XLSX workbook into a Table. The first sheet is
// used; its first row is the header. Short rows are padded with empty cells
// so downstream indexing stays uniform.
func ParseSpreadsheet(r io.Reader) (*Table, error) {
	wb, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, &FormatError{Reason: "workbook has no sheets"}
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, &FormatError{Reason: "workbook sheet is empty"}
	}

	cols := make([]string, len(rows[0]))
	for i, c := range rows[0] {
		cols[i] = strings.TrimSpace(c)
	}

	data := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) < len(cols) {
			padded := make([]string, len(cols))
			copy(padded, row)
			row = padded
		}
		data = append(data, row)
	}

	return &Table{Columns: cols, Rows: data}, nil
}

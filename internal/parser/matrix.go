package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// SheetMatrix reads one workbook sheet as a grid of string cells, one slice
// per source row. Rows may be shorter than the header row; read cells
// through Cell, which treats missing positions as empty strings.
func SheetMatrix(f *excelize.File, sheet string) ([][]string, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// Cell returns the raw cell at idx, or "" when the row is short or the
// column was never located (idx < 0).
func Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

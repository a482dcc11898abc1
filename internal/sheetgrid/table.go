package sheetgrid

import (
	"strings"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
)

// Records treats row 0 of grid as headers and returns one record per later
// row. Rows with no non-blank cell are skipped, short rows yield "" for
// their missing columns, and columns with a blank header are dropped.
func Records(grid Grid) ([]string, []dto.SheetRecord) {
	header := grid.Row(0)
	headers := make([]string, len(header))
	for i, cell := range header {
		headers[i] = strings.TrimSpace(CellText(cell))
	}

	records := []dto.SheetRecord{}
	for i := 1; i < len(grid); i++ {
		row := grid.Row(i)
		if isBlank(row) {
			continue
		}
		rec := make(dto.SheetRecord, len(headers))
		for col, name := range headers {
			if name == "" {
				continue
			}
			rec[name] = strings.TrimSpace(CellText(row.At(col)))
		}
		records = append(records, rec)
	}

	return nonBlank(headers), records
}

// HeaderIndex finds name among headers, ignoring case and surrounding
// space. It returns -1 when the header is missing.
func HeaderIndex(headers []string, name string) int {
	name = strings.TrimSpace(name)
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return -1
}

func isBlank(row Row) bool {
	for _, cell := range row {
		if strings.TrimSpace(CellText(cell)) != "" {
			return false
		}
	}
	return true
}

func nonBlank(headers []string) []string {
	out := make([]string, 0, len(headers))
	for _, h := range headers {
		if h != "" {
			out = append(out, h)
		}
	}
	return out
}

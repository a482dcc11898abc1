package workbook

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
)

// Reader serves cell values from a local .xlsx export of the spreadsheets,
// so extraction can run without Sheets API access.
type Reader struct {
	file *excelize.File
}

func Open(path string) (*Reader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", path, err)
	}
	return &Reader{file: f}, nil
}

func (r *Reader) Close() error {
	return r.file.Close()
}

// GetValues mirrors the Sheets adapter. The spreadsheet id is ignored: a
// workbook is one spreadsheet. readRange is a sheet name, optionally
// followed by !A1:Z60. Like the Sheets API, trailing empty cells and rows
// are dropped.
func (r *Reader) GetValues(ctx context.Context, _ string, readRange string) ([][]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sheet, cells, err := splitRange(readRange)
	if err != nil {
		return nil, err
	}
	if idx, _ := r.file.GetSheetIndex(sheet); idx < 0 {
		return nil, errs.NewNotFoundError(fmt.Sprintf("sheet %q not found in workbook", sheet))
	}

	rows, err := r.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	rows = crop(rows, cells)

	out := make([][]any, 0, len(rows))
	for _, row := range rows {
		row = trimRow(row)
		vals := make([]any, len(row))
		for i, v := range row {
			vals[i] = v
		}
		out = append(out, vals)
	}
	for len(out) > 0 && len(out[len(out)-1]) == 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

type cellRect struct {
	col0, row0, col1, row1 int // 0-based, inclusive
}

func splitRange(readRange string) (string, *cellRect, error) {
	sheet, cells, hasCells := strings.Cut(readRange, "!")
	sheet = strings.Trim(strings.TrimSpace(sheet), "'")
	if sheet == "" {
		return "", nil, errs.NewValidationError("range must name a sheet")
	}
	if !hasCells {
		return sheet, nil, nil
	}

	start, end, _ := strings.Cut(cells, ":")
	if end == "" {
		end = start
	}
	c0, r0, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return "", nil, errs.NewValidationError(fmt.Sprintf("invalid range %q", readRange))
	}
	c1, r1, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return "", nil, errs.NewValidationError(fmt.Sprintf("invalid range %q", readRange))
	}
	// A1:B5 and B5:A1 name the same cells.
	return sheet, &cellRect{
		col0: min(c0, c1) - 1,
		row0: min(r0, r1) - 1,
		col1: max(c0, c1) - 1,
		row1: max(r0, r1) - 1,
	}, nil
}

func crop(rows [][]string, rect *cellRect) [][]string {
	if rect == nil {
		return rows
	}
	if rect.row0 >= len(rows) {
		return nil
	}
	rows = rows[rect.row0:min(rect.row1+1, len(rows))]

	out := make([][]string, len(rows))
	for i, row := range rows {
		if rect.col0 < len(row) {
			out[i] = row[rect.col0:min(rect.col1+1, len(row))]
		}
	}
	return out
}

func trimRow(row []string) []string {
	for len(row) > 0 && row[len(row)-1] == "" {
		row = row[:len(row)-1]
	}
	return row
}

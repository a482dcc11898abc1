package sheetgrid

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Grid is the raw value matrix returned by the Sheets API. Rows are not
// padded, so any row may be shorter than its neighbours.
type Grid [][]any

// Row returns row i, or nil when i is outside the grid.
func (g Grid) Row(i int) Row {
	if i < 0 || i >= len(g) {
		return nil
	}
	return g[i]
}

// Row is a single sheet row.
type Row []any

// At returns the cell in column col, or nil when the row is too short.
func (r Row) At(col int) any {
	if col < 0 || col >= len(r) {
		return nil
	}
	return r[col]
}

// spreadsheet error values that are mapped to zero
var errorMarkers = map[string]struct{}{
	"#DIV/0!": {},
	"#N/A":    {},
	"#VALUE!": {},
}

var (
	formatStripper = strings.NewReplacer("%", "", ",", "")
	numericPrefix  = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// CellText renders a cell as the text a user would see in the sheet.
// Absent cells render as the empty string.
func CellText(cell any) string {
	switch v := cell.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case json.Number:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

// ParseValue turns a cell into a number. It never fails: absent cells,
// spreadsheet error values and anything non-numeric become 0, and the
// result is always finite. Percent signs and thousands separators are
// ignored, and trailing text after a leading number is dropped
// ("12 min" is 12).
func ParseValue(cell any) float64 {
	if cell == nil {
		return 0
	}

	text := strings.TrimSpace(CellText(cell))
	if text == "" {
		return 0
	}
	if _, ok := errorMarkers[text]; ok {
		return 0
	}

	text = formatStripper.Replace(text)
	num := numericPrefix.FindString(text)
	if num == "" {
		return 0
	}

	v, err := strconv.ParseFloat(num, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// RowText renders every cell of r with CellText.
func RowText(r Row) []string {
	out := make([]string, len(r))
	for i, cell := range r {
		out[i] = CellText(cell)
	}
	return out
}

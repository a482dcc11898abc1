package sheetgrid

import (
	"encoding/json"
	"testing"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want float64
	}{
		{"nil", nil, 0},
		{"empty", "", 0},
		{"whitespace", "   ", 0},
		{"div by zero", "#DIV/0!", 0},
		{"not available", "#N/A", 0},
		{"value error", "#VALUE!", 0},
		{"unlisted error", "#REF!", 0},
		{"padded error", "  #N/A ", 0},
		{"percent", "45.2%", 45.2},
		{"thousands", "1,234.5", 1234.5},
		{"negative percent", "-4.5%", -4.5},
		{"padded number", " 12 ", 12},
		{"trailing unit", "12 min", 12},
		{"leading dot", ".5", 0.5},
		{"text", "abc", 0},
		{"sign only", "-", 0},
		{"nan text", "NaN", 0},
		{"infinity text", "Infinity", 0},
		{"overflow", "1e999", 0},
		{"float", 3.5, 3.5},
		{"int zero", 0, 0},
		{"int", 42, 42},
		{"json number", json.Number("7.25"), 7.25},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ParseValue(tc.in); got != tc.want {
				t.Fatalf("ParseValue(%#v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestCellText(t *testing.T) {
	if got := CellText(nil); got != "" {
		t.Fatalf("nil cell: got %q", got)
	}
	if got := CellText(12.5); got != "12.5" {
		t.Fatalf("float cell: got %q", got)
	}
	if got := CellText("Koramangala"); got != "Koramangala" {
		t.Fatalf("string cell: got %q", got)
	}
}

func TestGridBounds(t *testing.T) {
	g := Grid{{"a"}, {}}
	if g.Row(-1) != nil || g.Row(2) != nil {
		t.Fatal("out of range rows should be nil")
	}
	if g.Row(0).At(1) != nil {
		t.Fatal("out of range cell should be nil")
	}
	if g.Row(0).At(0) != "a" {
		t.Fatal("expected cell a")
	}
}

func TestRowText(t *testing.T) {
	got := RowText(Row{"Outlet", nil, 3.0})
	if len(got) != 3 || got[0] != "Outlet" || got[1] != "" || got[2] != "3" {
		t.Fatalf("RowText = %q", got)
	}
	if len(RowText(nil)) != 0 {
		t.Fatal("nil row should render empty")
	}
}

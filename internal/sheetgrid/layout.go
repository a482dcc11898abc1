package sheetgrid

// Period labels understood by Extract.
const (
	Period1Day = "1 Day"
	Period7Day = "7 Day"
)

// Section locates one reporting period inside the dashboard tab.
// Row indices are zero-based; FirstRow..LastRow is inclusive.
type Section struct {
	HeaderRow int
	FirstRow  int
	LastRow   int
}

// Layout is the fixed shape of the dashboard tab. The tab is maintained by
// hand and carries no version marker, so every offset lives here.
type Layout struct {
	// BaseColumn is the zero-based column holding the outlet code. Metric
	// columns are addressed relative to it.
	BaseColumn int
	Sections   map[string]Section
}

// Column offsets relative to Layout.BaseColumn. The gaps are sheet columns
// the dashboard does not surface (ad-order percentages, per-metric trends,
// kitchen time).
const (
	colOutletCode     = 0
	colOutletLocation = 1
	colM2O            = 2
	colM2OTrend       = 3
	colNewUsers       = 6
	colRepeatUsers    = 7
	colLapsedUsers    = 8
	colMarketShare    = 12
	colOnlinePercent  = 14
	colFoodAccuracy   = 16
	colDelayedOrders  = 17
)

// DefaultLayout returns the layout of the production dashboard tab.
func DefaultLayout() Layout {
	return Layout{
		BaseColumn: 1,
		Sections: map[string]Section{
			Period1Day: {HeaderRow: 2, FirstRow: 3, LastRow: 22},
			Period7Day: {HeaderRow: 26, FirstRow: 27, LastRow: 46},
		},
	}
}

// Periods lists the labels the layout has a section for, in display order.
func (l Layout) Periods() []string {
	out := make([]string, 0, len(l.Sections))
	for _, p := range []string{Period1Day, Period7Day} {
		if _, ok := l.Sections[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

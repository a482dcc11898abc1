package sheetgrid

import (
	"math"
	"strconv"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
)

// Extract reads the section for period out of grid using the default layout.
func Extract(grid Grid, period string) dto.DashboardData {
	return DefaultLayout().Extract(grid, period)
}

// Extract reads the outlet rows of period's section. It never fails: an
// empty grid, an unknown period or a missing header row all produce the
// empty dashboard. Extraction stops at the first empty row or the first
// row without an outlet location; rows read before that are kept.
func (l Layout) Extract(grid Grid, period string) dto.DashboardData {
	out := dto.NewDashboardData()
	if len(grid) == 0 {
		return out
	}

	sec, ok := l.Sections[period]
	if !ok {
		return out
	}
	if len(grid.Row(sec.HeaderRow)) == 0 {
		return out
	}

	for i := sec.FirstRow; i <= sec.LastRow; i++ {
		row := grid.Row(i)
		if len(row) == 0 {
			break
		}
		location := row.At(l.BaseColumn + colOutletLocation)
		if location == nil {
			break
		}
		name := CellText(location)
		if name == "" {
			break
		}

		metric := func(offset int) float64 {
			return ParseValue(row.At(l.BaseColumn + offset))
		}

		out.Outlets = append(out.Outlets, name)
		out.M2O = append(out.M2O, metric(colM2O))
		out.M2OTrend = append(out.M2OTrend, metric(colM2OTrend))
		out.NewUsers = append(out.NewUsers, metric(colNewUsers))
		out.RepeatUsers = append(out.RepeatUsers, metric(colRepeatUsers))
		out.LapsedUsers = append(out.LapsedUsers, metric(colLapsedUsers))
		out.MarketShare = append(out.MarketShare, metric(colMarketShare))
		out.OnlinePercent = append(out.OnlinePercent, metric(colOnlinePercent))
		out.FoodAccuracy = append(out.FoodAccuracy, metric(colFoodAccuracy))
		out.DelayedOrders = append(out.DelayedOrders, metric(colDelayedOrders))
	}

	out.Summary = dto.DashboardSummary{
		AvgM2O:           average(out.M2O),
		AvgMarketShare:   average(out.MarketShare),
		AvgOnlinePercent: average(out.OnlinePercent),
		AvgFoodAccuracy:  average(out.FoodAccuracy),
		AvgM2OTrend:      average(out.M2OTrend),
		TotalOutlets:     len(out.Outlets),
	}
	return out
}

// average formats the arithmetic mean with two decimals, rounding ties
// away from zero (20.125 is "20.13"). An empty series is "0", not "0.00".
func average(values []float64) string {
	if len(values) == 0 {
		return "0"
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	return strconv.FormatFloat(math.Round(mean*100)/100, 'f', 2, 64)
}

package workbook

import (
	"github.com/xuri/excelize/v2"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
)

const (
	dashboardSheet = "Dashboard"
	// ContentType is the media type of EncodeDashboard's output.
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var dashboardHeader = []any{
	"Outlet", "M2O", "M2O Trend", "Market Share", "Online %", "Food Accuracy",
	"Delayed Orders", "New Users %", "Repeat Users %", "Lapsed Users %",
}

// EncodeDashboard renders one period of the dashboard as an .xlsx workbook:
// the period on row 1, a header on row 3, one row per outlet, then the
// summary block.
func EncodeDashboard(data dto.DashboardResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", dashboardSheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(dashboardSheet, "A1", &[]any{"Period", data.Period}); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(dashboardSheet, "A3", &dashboardHeader); err != nil {
		return nil, err
	}
	if err := f.SetRowStyle(dashboardSheet, 3, 3, bold); err != nil {
		return nil, err
	}

	row := 4
	for i, outlet := range data.Outlets {
		values := []any{
			outlet,
			data.M2O[i],
			data.M2OTrend[i],
			data.MarketShare[i],
			data.OnlinePercent[i],
			data.FoodAccuracy[i],
			data.DelayedOrders[i],
			data.NewUsers[i],
			data.RepeatUsers[i],
			data.LapsedUsers[i],
		}
		if err := f.SetSheetRow(dashboardSheet, cellName(1, row), &values); err != nil {
			return nil, err
		}
		row++
	}

	row++
	summary := [][]any{
		{"Total Outlets", data.Summary.TotalOutlets},
		{"Avg M2O", data.Summary.AvgM2O},
		{"Avg Market Share", data.Summary.AvgMarketShare},
		{"Avg Online %", data.Summary.AvgOnlinePercent},
		{"Avg Food Accuracy", data.Summary.AvgFoodAccuracy},
		{"Avg M2O Trend", data.Summary.AvgM2OTrend},
	}
	for _, values := range summary {
		if err := f.SetSheetRow(dashboardSheet, cellName(1, row), &values); err != nil {
			return nil, err
		}
		row++
	}

	if err := f.SetColWidth(dashboardSheet, "A", "A", 28); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

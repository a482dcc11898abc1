package dto

// DashboardData is the per-outlet view of one reporting period. Every slice
// is index-aligned: entry i of each describes Outlets[i].
type DashboardData struct {
	Outlets       []string         `json:"outlets"`
	M2O           []float64        `json:"m2o"`
	M2OTrend      []float64        `json:"m2oTrend"`
	MarketShare   []float64        `json:"marketShare"`
	OnlinePercent []float64        `json:"onlinePercent"`
	FoodAccuracy  []float64        `json:"foodAccuracy"`
	DelayedOrders []float64        `json:"delayedOrders"`
	NewUsers      []float64        `json:"newUsers"`
	RepeatUsers   []float64        `json:"repeatUsers"`
	LapsedUsers   []float64        `json:"lapsedUsers"`
	Summary       DashboardSummary `json:"summary"`
}

// DashboardSummary holds the averages as two-decimal text, or "0" when no
// outlet was extracted.
type DashboardSummary struct {
	AvgM2O           string `json:"avgM2O"`
	AvgMarketShare   string `json:"avgMarketShare"`
	AvgOnlinePercent string `json:"avgOnlinePercent"`
	AvgFoodAccuracy  string `json:"avgFoodAccuracy"`
	AvgM2OTrend      string `json:"avgM2OTrend"`
	TotalOutlets     int    `json:"totalOutlets"`
}

// NewDashboardData returns the empty dashboard: no outlets, every average "0".
// Slices are non-nil so they encode as [] rather than null.
func NewDashboardData() DashboardData {
	return DashboardData{
		Outlets:       []string{},
		M2O:           []float64{},
		M2OTrend:      []float64{},
		MarketShare:   []float64{},
		OnlinePercent: []float64{},
		FoodAccuracy:  []float64{},
		DelayedOrders: []float64{},
		NewUsers:      []float64{},
		RepeatUsers:   []float64{},
		LapsedUsers:   []float64{},
		Summary: DashboardSummary{
			AvgM2O:           "0",
			AvgMarketShare:   "0",
			AvgOnlinePercent: "0",
			AvgFoodAccuracy:  "0",
			AvgM2OTrend:      "0",
		},
	}
}

type DashboardResponse struct {
	Period string `json:"period"`
	DashboardData
}

type PeriodsResponse struct {
	Periods []string `json:"periods"`
	Default string   `json:"default"`
}

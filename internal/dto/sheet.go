package dto

// SheetRecord is one data row of a header-row tab, keyed by header text.
type SheetRecord map[string]string

type ChecklistResponse struct {
	Submissions []SheetRecord `json:"submissions"`
	Headers     []string      `json:"headers"`
	Total       int           `json:"total"`
}

type StockOutResponse struct {
	Items    []SheetRecord  `json:"items"`
	Headers  []string       `json:"headers"`
	ByOutlet map[string]int `json:"byOutlet"`
	Total    int            `json:"total"`
}

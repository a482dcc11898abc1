package services

import (
	"fmt"
	"time"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/sheetgrid"
)

func systemPrompt(now time.Time) string {
	return fmt.Sprintf(`You are the product assistant for a restaurant chain's operations team.
Today is %s.
Answer questions about outlet performance, stock-outs and daily checklists.
Use get_outlet_dashboard for M2O (menu-to-order conversion), market share, online
percentage, food accuracy, delayed orders and user mix per outlet. Use "1 Day" for
yesterday and "7 Day" for the last week.
Use get_stock_out_items for items currently out of stock.
Use get_checklist_submissions for recent outlet checklists.
Percentages in tool results are already in percent. Keep answers short and name outlets explicitly.
If the data does not answer the question, say so.`, now.Format("Monday, 2 January 2006"))
}

func strictSystemPrompt(now time.Time) string {
	return systemPrompt(now) + `
When calling a function, call exactly one of the declared functions with arguments that match its schema.
Never invent function names or arguments.`
}

func toolSchemas() []dto.VertexTool {
	return []dto.VertexTool{
		{
			Name:        toolOutletDashboard,
			Description: "Per-outlet performance metrics and averages for a reporting period.",
			Parameters: &dto.VertexSchema{
				Type: "object",
				Properties: map[string]*dto.VertexSchema{
					"period": {
						Type:        "string",
						Description: "Reporting window.",
						Enum:        sheetgrid.DefaultLayout().Periods(),
					},
				},
				Required: []string{"period"},
			},
		},
		{
			Name:        toolStockOutItems,
			Description: "Items currently out of stock, with a count per outlet.",
		},
		{
			Name:        toolChecklistSubmissions,
			Description: "Most recent outlet checklist submissions, newest first.",
			Parameters: &dto.VertexSchema{
				Type: "object",
				Properties: map[string]*dto.VertexSchema{
					"limit": {
						Type:        "integer",
						Description: "How many submissions to return (1-50).",
					},
				},
			},
		},
	}
}

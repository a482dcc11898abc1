package services

import (
	"context"

	"github.com/GregMSThompson/outlet-dashboard/internal/config"
	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/sheetgrid"
	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

const unassignedOutlet = "Unassigned"

type stockOutService struct {
	sheets       sheetReader
	source       config.SheetSource
	outletColumn string
}

func NewStockOutService(sheets sheetReader, source config.SheetSource, outletColumn string) *stockOutService {
	return &stockOutService{sheets: sheets, source: source, outletColumn: outletColumn}
}

// ListStockOut returns every stock-out item with a count per outlet.
// Items without an outlet are counted under "Unassigned".
func (s *stockOutService) ListStockOut(ctx context.Context) (dto.StockOutResponse, error) {
	log := logger.FromContext(ctx)

	rows, err := s.sheets.GetValues(ctx, s.source.SpreadsheetID, s.source.Range)
	if err != nil {
		log.Error("failed to fetch stock-out sheet", "range", s.source.Range, "error", err)
		return dto.StockOutResponse{}, err
	}

	headers, items := sheetgrid.Records(sheetgrid.Grid(rows))
	byOutlet := map[string]int{}

	col := sheetgrid.HeaderIndex(headers, s.outletColumn)
	if col < 0 {
		if len(items) > 0 {
			log.Warn("stock-out outlet column not found", "column", s.outletColumn, "headers", headers)
		}
	} else {
		key := headers[col]
		for _, item := range items {
			outlet := item[key]
			if outlet == "" {
				outlet = unassignedOutlet
			}
			byOutlet[outlet]++
		}
	}

	return dto.StockOutResponse{
		Items:    items,
		Headers:  headers,
		ByOutlet: byOutlet,
		Total:    len(items),
	}, nil
}

package services

import (
	"context"
	"fmt"

	"github.com/GregMSThompson/outlet-dashboard/internal/client/workbook"
	"github.com/GregMSThompson/outlet-dashboard/internal/config"
	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/sheetgrid"
	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

// sheetReader is the Sheets adapter as seen by the services.
type sheetReader interface {
	GetValues(ctx context.Context, spreadsheetID, readRange string) ([][]any, error)
}

type outletRecorder interface {
	SetOutletsExtracted(period string, n int)
}

type dashboardService struct {
	sheets  sheetReader
	source  config.SheetSource
	layout  sheetgrid.Layout
	metrics outletRecorder
}

func NewDashboardService(sheets sheetReader, source config.SheetSource, metrics outletRecorder) *dashboardService {
	return &dashboardService{
		sheets:  sheets,
		source:  source,
		layout:  sheetgrid.DefaultLayout(),
		metrics: metrics,
	}
}

// GetDashboard fetches the dashboard tab and extracts period from it. A
// layout mismatch yields an empty dashboard rather than an error; only a
// failed fetch is reported.
func (s *dashboardService) GetDashboard(ctx context.Context, period string) (dto.DashboardResponse, error) {
	log := logger.FromContext(ctx)

	rows, err := s.sheets.GetValues(ctx, s.source.SpreadsheetID, s.source.Range)
	if err != nil {
		log.Error("failed to fetch dashboard sheet", "range", s.source.Range, "error", err)
		return dto.DashboardResponse{}, err
	}

	grid := sheetgrid.Grid(rows)
	if logger.IsDebugEnabled(ctx) {
		if section, ok := s.layout.Sections[period]; ok {
			log.Debug("dashboard section header",
				"period", period,
				"header_row", section.HeaderRow,
				"header", sheetgrid.RowText(grid.Row(section.HeaderRow)))
		}
	}

	data := s.layout.Extract(grid, period)

	if _, known := s.layout.Sections[period]; known && s.metrics != nil {
		s.metrics.SetOutletsExtracted(period, data.Summary.TotalOutlets)
	}
	if data.Summary.TotalOutlets == 0 {
		log.Warn("no outlets extracted", "period", period, "rows", len(rows))
	} else {
		log.Info("dashboard extracted", "period", period, "outlets", data.Summary.TotalOutlets)
	}

	return dto.DashboardResponse{Period: period, DashboardData: data}, nil
}

// ExportDashboard renders the same data GetDashboard returns as an .xlsx
// workbook.
func (s *dashboardService) ExportDashboard(ctx context.Context, period string) ([]byte, error) {
	resp, err := s.GetDashboard(ctx, period)
	if err != nil {
		return nil, err
	}

	b, err := workbook.EncodeDashboard(resp)
	if err != nil {
		return nil, fmt.Errorf("encode dashboard workbook: %w", err)
	}
	return b, nil
}

func (s *dashboardService) Periods() dto.PeriodsResponse {
	return dto.PeriodsResponse{
		Periods: s.layout.Periods(),
		Default: sheetgrid.Period1Day,
	}
}

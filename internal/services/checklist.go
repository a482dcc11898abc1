package services

import (
	"context"
	"slices"

	"github.com/GregMSThompson/outlet-dashboard/internal/config"
	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
	"github.com/GregMSThompson/outlet-dashboard/internal/sheetgrid"
	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

type checklistService struct {
	sheets sheetReader
	source config.SheetSource
}

func NewChecklistService(sheets sheetReader, source config.SheetSource) *checklistService {
	return &checklistService{sheets: sheets, source: source}
}

// ListSubmissions returns checklist submissions newest first. The form
// appends responses at the bottom of the tab. limit 0 means all; Total is
// always the full count.
func (s *checklistService) ListSubmissions(ctx context.Context, limit int) (dto.ChecklistResponse, error) {
	if limit < 0 {
		return dto.ChecklistResponse{}, errs.NewValidationError("limit must not be negative")
	}

	rows, err := s.sheets.GetValues(ctx, s.source.SpreadsheetID, s.source.Range)
	if err != nil {
		logger.FromContext(ctx).Error("failed to fetch checklist sheet", "range", s.source.Range, "error", err)
		return dto.ChecklistResponse{}, err
	}

	headers, records := sheetgrid.Records(sheetgrid.Grid(rows))
	slices.Reverse(records)

	total := len(records)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return dto.ChecklistResponse{
		Submissions: records,
		Headers:     headers,
		Total:       total,
	}, nil
}

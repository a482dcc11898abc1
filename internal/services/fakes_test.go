package services

import (
	"context"
	"errors"
	"slices"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/models"
)

type fakeSheets struct {
	rows   [][]any
	err    error
	calls  int
	ranges []string
}

func (f *fakeSheets) GetValues(_ context.Context, _, readRange string) ([][]any, error) {
	f.calls++
	f.ranges = append(f.ranges, readRange)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

type fakeOutletRecorder struct {
	sets map[string]int
}

func (f *fakeOutletRecorder) SetOutletsExtracted(period string, n int) {
	if f.sets == nil {
		f.sets = map[string]int{}
	}
	f.sets[period] = n
}

type fakeVertexClient struct {
	responses []dto.VertexGenerateResponse
	errs      []error
	requests  []dto.VertexGenerateRequest
}

func (f *fakeVertexClient) GenerateContent(_ context.Context, req dto.VertexGenerateRequest) (dto.VertexGenerateResponse, error) {
	f.requests = append(f.requests, req)
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		if err != nil {
			return dto.VertexGenerateResponse{}, err
		}
	}
	if len(f.responses) == 0 {
		return dto.VertexGenerateResponse{}, errors.New("no responses configured")
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

type fakeChatStore struct {
	history []models.ChatMessage
	saved   []models.ChatMessage
	saveErr error
	listErr error
	lastUID string
	lastSID string
}

func (f *fakeChatStore) SaveMessage(_ context.Context, uid, sessionID string, msg models.ChatMessage) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.lastUID, f.lastSID = uid, sessionID
	f.saved = append(f.saved, msg)
	return nil
}

func (f *fakeChatStore) ListMessages(_ context.Context, _, _ string, limit int) ([]models.ChatMessage, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if len(f.history) > limit {
		return slices.Clone(f.history[len(f.history)-limit:]), nil
	}
	return slices.Clone(f.history), nil
}

type fakeDashboardReader struct {
	resp    dto.DashboardResponse
	err     error
	periods []string
}

func (f *fakeDashboardReader) GetDashboard(_ context.Context, period string) (dto.DashboardResponse, error) {
	f.periods = append(f.periods, period)
	if f.err != nil {
		return dto.DashboardResponse{}, f.err
	}
	resp := f.resp
	resp.Period = period
	return resp, nil
}

type fakeStockOutReader struct {
	resp  dto.StockOutResponse
	calls int
}

func (f *fakeStockOutReader) ListStockOut(context.Context) (dto.StockOutResponse, error) {
	f.calls++
	return f.resp, nil
}

type fakeChecklistReader struct {
	resp   dto.ChecklistResponse
	limits []int
}

func (f *fakeChecklistReader) ListSubmissions(_ context.Context, limit int) (dto.ChecklistResponse, error) {
	f.limits = append(f.limits, limit)
	return f.resp, nil
}

type fakeChatRecorder struct {
	tools []string
	errs  []error
}

func (f *fakeChatRecorder) CountChatQuery(tool string, err error) {
	f.tools = append(f.tools, tool)
	f.errs = append(f.errs, err)
}

package handlers

import (
	"context"
	"net/http"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/middleware"
)

type stubResponseHandler struct {
	writeSuccessCalled bool
	writeSuccessStatus int
	writeSuccessData   any

	handleErrorCalled bool
	handleError       error

	errorWriteCalled bool
	errorWriteStatus int
	errorWriteCode   string
	errorWriteMsg    string
}

func (s *stubResponseHandler) WriteSuccess(w http.ResponseWriter, _ *http.Request, status int, data any) {
	s.writeSuccessCalled = true
	s.writeSuccessStatus = status
	s.writeSuccessData = data

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":true}`))
}

func (s *stubResponseHandler) WriteError(w http.ResponseWriter, _ *http.Request, status int, code, message string) {
	s.errorWriteCalled = true
	s.errorWriteStatus = status
	s.errorWriteCode = code
	s.errorWriteMsg = message
	w.WriteHeader(status)
}

func (s *stubResponseHandler) HandleError(w http.ResponseWriter, _ *http.Request, err error) {
	s.handleErrorCalled = true
	s.handleError = err
	w.WriteHeader(http.StatusInternalServerError)
}

type stubDashboardService struct {
	resp       dto.DashboardResponse
	export     []byte
	err        error
	lastPeriod string
}

func (s *stubDashboardService) GetDashboard(_ context.Context, period string) (dto.DashboardResponse, error) {
	s.lastPeriod = period
	return s.resp, s.err
}

func (s *stubDashboardService) ExportDashboard(_ context.Context, period string) ([]byte, error) {
	s.lastPeriod = period
	return s.export, s.err
}

func (s *stubDashboardService) Periods() dto.PeriodsResponse {
	return dto.PeriodsResponse{Periods: []string{"1 Day", "7 Day"}, Default: "1 Day"}
}

type stubChecklistService struct {
	resp      dto.ChecklistResponse
	err       error
	lastLimit int
	called    bool
}

func (s *stubChecklistService) ListSubmissions(_ context.Context, limit int) (dto.ChecklistResponse, error) {
	s.called = true
	s.lastLimit = limit
	return s.resp, s.err
}

type stubStockOutService struct {
	resp dto.StockOutResponse
	err  error
}

func (s *stubStockOutService) ListStockOut(context.Context) (dto.StockOutResponse, error) {
	return s.resp, s.err
}

type stubChatService struct {
	resp        dto.ChatResponse
	err         error
	called      bool
	lastUID     string
	lastSession string
	lastMessage string
}

func (s *stubChatService) Query(_ context.Context, uid, sessionID, message string) (dto.ChatResponse, error) {
	s.called = true
	s.lastUID = uid
	s.lastSession = sessionID
	s.lastMessage = message
	return s.resp, s.err
}

// withUID injects a UID into the request context.
func withUID(r *http.Request, uid string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UIDKey, uid)
	return r.WithContext(ctx)
}

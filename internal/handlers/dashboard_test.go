package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
)

func TestGetDashboard_DefaultPeriod(t *testing.T) {
	svc := &stubDashboardService{resp: dto.DashboardResponse{Period: "1 Day", DashboardData: dto.NewDashboardData()}}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	h.GetDashboard(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess with 200, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	if svc.lastPeriod != "1 Day" {
		t.Errorf("expected default period, got %q", svc.lastPeriod)
	}
}

func TestGetDashboard_PeriodQuery(t *testing.T) {
	svc := &stubDashboardService{}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?period=7+Day", nil)
	rr := httptest.NewRecorder()
	h.GetDashboard(rr, req)

	if svc.lastPeriod != "7 Day" {
		t.Errorf("expected period 7 Day, got %q", svc.lastPeriod)
	}
}

func TestGetDashboard_ServiceError(t *testing.T) {
	svc := &stubDashboardService{err: errors.New("sheets down")}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rr := httptest.NewRecorder()
	h.GetDashboard(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError to be called")
	}
	if resp.writeSuccessCalled {
		t.Fatal("WriteSuccess should not be called on error")
	}
}

func TestGetPeriods_OK(t *testing.T) {
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: &stubDashboardService{}})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/periods", nil)
	rr := httptest.NewRecorder()
	h.GetPeriods(rr, req)

	data, ok := resp.writeSuccessData.(dto.PeriodsResponse)
	if !ok {
		t.Fatalf("expected PeriodsResponse, got %T", resp.writeSuccessData)
	}
	if data.Default != "1 Day" || len(data.Periods) != 2 {
		t.Errorf("unexpected periods: %+v", data)
	}
}

func TestExportDashboard_OK(t *testing.T) {
	svc := &stubDashboardService{export: []byte("PK-xlsx")}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/export?period=7+Day", nil)
	rr := httptest.NewRecorder()
	h.ExportDashboard(rr, req)

	if rr.Code != http.StatusOK || rr.Body.String() != "PK-xlsx" {
		t.Fatalf("unexpected response %d %q", rr.Code, rr.Body.String())
	}
	if got := rr.Header().Get("Content-Disposition"); got != `attachment; filename="outlet-dashboard-7-day.xlsx"` {
		t.Errorf("unexpected disposition %q", got)
	}
	if svc.lastPeriod != "7 Day" {
		t.Errorf("expected period 7 Day, got %q", svc.lastPeriod)
	}
	if resp.writeSuccessCalled {
		t.Error("export should not use the JSON envelope")
	}
}

func TestExportDashboard_ServiceError(t *testing.T) {
	svc := &stubDashboardService{err: errors.New("sheets down")}
	resp := &stubResponseHandler{}
	h := NewDashboardHandlers(&Deps{ResponseHandler: resp, DashboardSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/export", nil)
	rr := httptest.NewRecorder()
	h.ExportDashboard(rr, req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError to be called")
	}
	if svc.lastPeriod != "1 Day" {
		t.Errorf("expected default period, got %q", svc.lastPeriod)
	}
}

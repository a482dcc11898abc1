package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
)

func TestListSubmissions_OK(t *testing.T) {
	svc := &stubChecklistService{}
	resp := &stubResponseHandler{}
	h := NewChecklistHandlers(&Deps{ResponseHandler: resp, ChecklistSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/checklists?limit=5", nil)
	rr := httptest.NewRecorder()
	h.ListSubmissions(rr, req)

	if !resp.writeSuccessCalled || resp.writeSuccessStatus != http.StatusOK {
		t.Fatalf("expected WriteSuccess with 200, got called=%v status=%d", resp.writeSuccessCalled, resp.writeSuccessStatus)
	}
	if svc.lastLimit != 5 {
		t.Errorf("expected limit 5, got %d", svc.lastLimit)
	}
}

func TestListSubmissions_NoLimit(t *testing.T) {
	svc := &stubChecklistService{}
	h := NewChecklistHandlers(&Deps{ResponseHandler: &stubResponseHandler{}, ChecklistSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/checklists", nil)
	h.ListSubmissions(httptest.NewRecorder(), req)

	if svc.lastLimit != 0 {
		t.Errorf("expected limit 0, got %d", svc.lastLimit)
	}
}

func TestListSubmissions_InvalidLimit(t *testing.T) {
	for _, raw := range []string{"abc", "-3"} {
		svc := &stubChecklistService{}
		resp := &stubResponseHandler{}
		h := NewChecklistHandlers(&Deps{ResponseHandler: resp, ChecklistSvc: svc})

		req := httptest.NewRequest(http.MethodGet, "/api/checklists?limit="+raw, nil)
		h.ListSubmissions(httptest.NewRecorder(), req)

		var valErr *errs.ValidationError
		if !errors.As(resp.handleError, &valErr) {
			t.Fatalf("limit=%s: expected ValidationError, got %v", raw, resp.handleError)
		}
		if svc.called {
			t.Fatalf("limit=%s: service should not be called", raw)
		}
	}
}

func TestListSubmissions_ServiceError(t *testing.T) {
	svc := &stubChecklistService{err: errors.New("sheets down")}
	resp := &stubResponseHandler{}
	h := NewChecklistHandlers(&Deps{ResponseHandler: resp, ChecklistSvc: svc})

	req := httptest.NewRequest(http.MethodGet, "/api/checklists", nil)
	h.ListSubmissions(httptest.NewRecorder(), req)

	if !resp.handleErrorCalled {
		t.Fatal("expected HandleError to be called")
	}
}

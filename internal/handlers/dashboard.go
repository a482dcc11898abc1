package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/outlet-dashboard/internal/client/workbook"
	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/response"
	"github.com/GregMSThompson/outlet-dashboard/internal/sheetgrid"
)

type dashboardService interface {
	GetDashboard(ctx context.Context, period string) (dto.DashboardResponse, error)
	ExportDashboard(ctx context.Context, period string) ([]byte, error)
	Periods() dto.PeriodsResponse
}

type dashboardHandlers struct {
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
}

func NewDashboardHandlers(deps *Deps) *dashboardHandlers {
	return &dashboardHandlers{
		ResponseHandler: deps.ResponseHandler,
		DashboardSvc:    deps.DashboardSvc,
	}
}

func (h *dashboardHandlers) DashboardRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetDashboard)
	r.Get("/periods", h.GetPeriods)
	r.Get("/export", h.ExportDashboard)
	return r
}

// GetDashboard serves one period of the outlet dashboard. A missing period
// means "1 Day"; an unknown one yields the empty dashboard.
func (h *dashboardHandlers) GetDashboard(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r)

	data, err := h.DashboardSvc.GetDashboard(r.Context(), period)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, data)
}

func (h *dashboardHandlers) GetPeriods(w http.ResponseWriter, r *http.Request) {
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, h.DashboardSvc.Periods())
}

// ExportDashboard serves the dashboard as an .xlsx download.
func (h *dashboardHandlers) ExportDashboard(w http.ResponseWriter, r *http.Request) {
	period := periodParam(r)

	b, err := h.DashboardSvc.ExportDashboard(r.Context(), period)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	filename := "outlet-dashboard-" + strings.ToLower(strings.ReplaceAll(period, " ", "-")) + ".xlsx"
	w.Header().Set("Content-Type", workbook.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(b)
}

func periodParam(r *http.Request) string {
	if period := r.URL.Query().Get("period"); period != "" {
		return period
	}
	return sheetgrid.Period1Day
}

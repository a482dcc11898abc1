package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
	"github.com/GregMSThompson/outlet-dashboard/internal/response"
)

type checklistService interface {
	ListSubmissions(ctx context.Context, limit int) (dto.ChecklistResponse, error)
}

type checklistHandlers struct {
	ResponseHandler response.ResponseHandler
	ChecklistSvc    checklistService
}

func NewChecklistHandlers(deps *Deps) *checklistHandlers {
	return &checklistHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChecklistSvc:    deps.ChecklistSvc,
	}
}

func (h *checklistHandlers) ChecklistRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListSubmissions)
	return r
}

func (h *checklistHandlers) ListSubmissions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.ResponseHandler.HandleError(w, r, errs.NewValidationError("limit must be a non-negative integer"))
			return
		}
		limit = n
	}

	resp, err := h.ChecklistSvc.ListSubmissions(r.Context(), limit)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

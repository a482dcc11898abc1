package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/response"
)

type stockOutService interface {
	ListStockOut(ctx context.Context) (dto.StockOutResponse, error)
}

type stockOutHandlers struct {
	ResponseHandler response.ResponseHandler
	StockOutSvc     stockOutService
}

func NewStockOutHandlers(deps *Deps) *stockOutHandlers {
	return &stockOutHandlers{
		ResponseHandler: deps.ResponseHandler,
		StockOutSvc:     deps.StockOutSvc,
	}
}

func (h *stockOutHandlers) StockOutRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ListStockOut)
	return r
}

func (h *stockOutHandlers) ListStockOut(w http.ResponseWriter, r *http.Request) {
	resp, err := h.StockOutSvc.ListStockOut(r.Context())
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

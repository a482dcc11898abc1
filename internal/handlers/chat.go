package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/GregMSThompson/outlet-dashboard/internal/dto"
	"github.com/GregMSThompson/outlet-dashboard/internal/errs"
	"github.com/GregMSThompson/outlet-dashboard/internal/middleware"
	"github.com/GregMSThompson/outlet-dashboard/internal/response"
)

const maxChatMessageLength = 2000

type chatService interface {
	Query(ctx context.Context, uid, sessionID, message string) (dto.ChatResponse, error)
}

type chatHandlers struct {
	ResponseHandler response.ResponseHandler
	ChatSvc         chatService
}

func NewChatHandlers(deps *Deps) *chatHandlers {
	return &chatHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChatSvc:         deps.ChatSvc,
	}
}

func (h *chatHandlers) ChatRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Query)
	return r
}

func (h *chatHandlers) Query(w http.ResponseWriter, r *http.Request) {
	var body dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			err = errs.NewValidationError("request body is empty or incomplete")
		}
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	message := strings.TrimSpace(body.Message)
	if message == "" {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("message is required"))
		return
	}
	if len(message) > maxChatMessageLength {
		h.ResponseHandler.HandleError(w, r, errs.NewValidationError("message is too long"))
		return
	}

	uid := middleware.UID(r.Context())
	resp, err := h.ChatSvc.Query(r.Context(), uid, body.SessionID, message)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

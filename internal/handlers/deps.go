package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/outlet-dashboard/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	DashboardSvc    dashboardService
	ChecklistSvc    checklistService
	StockOutSvc     stockOutService
	ChatSvc         chatService
	Firebase        *auth.Client
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GregMSThompson/outlet-dashboard/internal/bootstrap"
	"github.com/GregMSThompson/outlet-dashboard/internal/config"
	"github.com/GregMSThompson/outlet-dashboard/internal/handlers"
	"github.com/GregMSThompson/outlet-dashboard/internal/response"
	"github.com/GregMSThompson/outlet-dashboard/internal/router"
	"github.com/GregMSThompson/outlet-dashboard/internal/services"
	"github.com/GregMSThompson/outlet-dashboard/internal/store"
)

const shutdownTimeout = 15 * time.Second

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	if err != nil {
		bs.Close()
	}
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	cstore := store.NewChatStore(bs.Firestore)

	// services
	dserv := services.NewDashboardService(bs.SheetsAdapter, cfg.Dashboard, bs.Metrics)
	clserv := services.NewChecklistService(bs.SheetsAdapter, cfg.Checklist)
	soserv := services.NewStockOutService(bs.SheetsAdapter, cfg.StockOut, cfg.StockOutOutletColumn)
	chserv := services.NewChatService(bs.VertexAdapter, dserv, soserv, clserv, cstore, bs.Metrics, cfg.AITTL)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.DashboardSvc = dserv
	deps.ChecklistSvc = clserv
	deps.StockOutSvc = soserv
	deps.ChatSvc = chserv

	// router
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router.NewRouter(deps, cfg, bs.Metrics),
		ReadHeaderTimeout: 10 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		bs.Log.Info("listening", "addr", server.Addr, "auth", cfg.AuthEnabled)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			bs.Close()
			exitOnError("server start failed", err, bs.Log)
		}

	case sig := <-shutdown:
		bs.Log.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			bs.Log.Error("graceful shutdown did not complete", "error", err)
			_ = server.Close()
		}
	}
}

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/GregMSThompson/outlet-dashboard/internal/config"
	"github.com/GregMSThompson/outlet-dashboard/internal/handlers"
	"github.com/GregMSThompson/outlet-dashboard/internal/metrics"
	"github.com/GregMSThompson/outlet-dashboard/internal/middleware"
)

const requestTimeout = 60 * time.Second

func NewRouter(deps *handlers.Deps, cfg *config.Config, m *metrics.Metrics) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(middleware.NewMetricsMiddleware(m).MetricsMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", handlers.Healthz)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	dh := handlers.NewDashboardHandlers(deps)
	clh := handlers.NewChecklistHandlers(deps)
	soh := handlers.NewStockOutHandlers(deps)
	chh := handlers.NewChatHandlers(deps)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(requestTimeout))
		if cfg.AuthEnabled && deps.Firebase != nil {
			r.Use(middleware.NewMiddleware(deps.Firebase).FirebaseAuth)
		}

		r.Mount("/dashboard", dh.DashboardRoutes())
		r.Mount("/checklists", clh.ChecklistRoutes())
		r.Mount("/stock-out", soh.StockOutRoutes())
		r.Mount("/chat", chh.ChatRoutes())
	})

	return r
}

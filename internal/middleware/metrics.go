package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/GregMSThompson/outlet-dashboard/pkg/logger"
)

type httpObserver interface {
	ObserveHTTP(route, method string, status int, dur time.Duration)
}

type metricsMiddleware struct {
	Metrics httpObserver
}

func NewMetricsMiddleware(m httpObserver) *metricsMiddleware {
	return &metricsMiddleware{Metrics: m}
}

// MetricsMiddleware records status and latency per route pattern, so
// /api/dashboard?period=7+Day and ?period=1+Day share one series.
func (m *metricsMiddleware) MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		dur := time.Since(start)

		m.Metrics.ObserveHTTP(route, r.Method, status, dur)
		logger.FromContext(r.Context()).Debug("request completed",
			"route", route,
			"status", status,
			"duration", dur)
	})
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "outlet_dashboard"

// Metrics owns a private registry so tests can build as many as they like.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	sheetFetch      *prometheus.HistogramVec
	outlets         *prometheus.GaugeVec
	chatQueries     *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDurationSec *prometheus.HistogramVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sheetFetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sheet_fetch_seconds",
			Help:      "Latency of Google Sheets value reads.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"range", "outcome"}),
		outlets: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "outlets_extracted",
			Help:      "Outlets found in the last dashboard extraction.",
		}, []string{"period"}),
		chatQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_queries_total",
			Help:      "Product chat queries by outcome and tool.",
		}, []string{"outcome", "tool"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		httpDurationSec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sheetFetch,
		m.outlets,
		m.chatQueries,
		m.httpRequests,
		m.httpDurationSec,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveSheetFetch(readRange string, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	m.sheetFetch.WithLabelValues(readRange, outcome(err)).Observe(elapsed.Seconds())
}

func (m *Metrics) SetOutletsExtracted(period string, n int) {
	if m == nil {
		return
	}
	m.outlets.WithLabelValues(period).Set(float64(n))
}

func (m *Metrics) CountChatQuery(tool string, err error) {
	if m == nil {
		return
	}
	m.chatQueries.WithLabelValues(outcome(err), tool).Inc()
}

func (m *Metrics) ObserveHTTP(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpDurationSec.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collaboration counters. A nil *Metrics is valid and
// records nothing, so services can be built without a registry in tests.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	AccessDecisionsTotal    *prometheus.CounterVec
	InviteConsumptionsTotal *prometheus.CounterVec
	DocumentVersionsTotal   *prometheus.CounterVec
	ChatMessagesTotal       *prometheus.CounterVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamspace_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "teamspace_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		AccessDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamspace_access_decisions_total",
				Help: "Access decisions by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		InviteConsumptionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamspace_invite_consumptions_total",
				Help: "Invite code consumption attempts by result",
			},
			[]string{"result"},
		),
		DocumentVersionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamspace_document_versions_total",
				Help: "Document versions appended to the ledger by cause",
			},
			[]string{"cause"},
		),
		ChatMessagesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamspace_chat_messages_total",
				Help: "Chat messages sent by scope",
			},
			[]string{"scope"},
		),
	}

	registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AccessDecisionsTotal,
		m.InviteConsumptionsTotal,
		m.DocumentVersionsTotal,
		m.ChatMessagesTotal,
	)

	return m
}

func (m *Metrics) ObserveAccessDecision(action string, allowed bool) {
	if m == nil {
		return
	}
	outcome := "deny"
	if allowed {
		outcome = "allow"
	}
	m.AccessDecisionsTotal.WithLabelValues(action, outcome).Inc()
}

func (m *Metrics) ObserveInviteConsumption(result string) {
	if m == nil {
		return
	}
	m.InviteConsumptionsTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveDocumentVersion(cause string) {
	if m == nil {
		return
	}
	m.DocumentVersionsTotal.WithLabelValues(cause).Inc()
}

func (m *Metrics) ObserveChatMessage(scope string) {
	if m == nil {
		return
	}
	m.ChatMessagesTotal.WithLabelValues(scope).Inc()
}

// HTTPMiddleware records request counts and latency labelled by the chi route
// pattern, keeping label cardinality independent of path parameters.
func (m *Metrics) HTTPMiddleware(next http.Handler) http.Handler {
	if m == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

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

		m.HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		m.HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// Handler exposes the registry in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	require.NotNil(t, m)

	m.ObserveAccessDecision("chat.read", true)
	m.ObserveAccessDecision("chat.read", false)
	m.ObserveAccessDecision("chat.read", false)
	m.ObserveInviteConsumption("consumed")
	m.ObserveDocumentVersion("restore")
	m.ObserveChatMessage("team")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.AccessDecisionsTotal.WithLabelValues("chat.read", "allow")))
	assert.Equal(t, float64(2), testutil.ToFloat64(m.AccessDecisionsTotal.WithLabelValues("chat.read", "deny")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.InviteConsumptionsTotal.WithLabelValues("consumed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.DocumentVersionsTotal.WithLabelValues("restore")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ChatMessagesTotal.WithLabelValues("team")))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveAccessDecision("team.read", true)
		m.ObserveInviteConsumption("consumed")
		m.ObserveDocumentVersion("edit")
		m.ObserveChatMessage("company")
	})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
	assert.NotNil(t, m.HTTPMiddleware(next))
}

func TestHTTPMiddleware_UsesRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)

	r := chi.NewRouter()
	r.Use(m.HTTPMiddleware)
	r.Get("/documents/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	for _, id := range []string{"a", "b", "c"} {
		req := httptest.NewRequest(http.MethodGet, "/documents/"+id, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	assert.Equal(t, float64(3), testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/documents/{id}", "404")))
}

func TestHandler(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetrics(registry)
	m.ObserveChatMessage("company")

	srv := httptest.NewServer(Handler(registry))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `teamspace_chat_messages_total{scope="company"} 1`)
}

package observability

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_RecordsRoutePattern(t *testing.T) {
	m := NewMetrics()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/api/report/{domain}/csv", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/report/ventas/csv", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("/api/report/{domain}/csv", "404")))
}

func TestObserveFetch(t *testing.T) {
	m := NewMetrics()

	m.ObserveFetch("costos", nil, 20*time.Millisecond)
	m.ObserveFetch("costos", errors.New("timeout"), time.Second)
	m.ObserveFetch("costos", errors.New("timeout"), time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("costos", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.fetchTotal.WithLabelValues("costos", "error")))
}

func TestHandler(t *testing.T) {
	m := NewMetrics()
	m.ObserveFetch("rendimiento", nil, time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), `dashboard_feed_fetch_total{domain="rendimiento",result="ok"} 1`)
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	m.ObserveFetch("costos", nil, time.Millisecond)
}

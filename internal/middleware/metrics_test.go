package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cassiomorais/paybridge/internal/infrastructure/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gatewayRouter(metrics *observability.Metrics, status int) *chi.Mux {
	r := chi.NewRouter()
	r.Use(Metrics(metrics))
	r.Post("/api/v1/providers/{provider}/payments", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(status)
	})
	return r
}

func TestMetrics_RecordsRequestByRoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics("paybridge", reg)

	r := gatewayRouter(metrics, http.StatusOK)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/worldpay/payments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)

	var total, duration bool
	for _, mf := range families {
		switch mf.GetName() {
		case "paybridge_http_requests_total":
			total = true
			require.Len(t, mf.Metric, 1)
			labels := map[string]string{}
			for _, lp := range mf.Metric[0].Label {
				labels[lp.GetName()] = lp.GetValue()
			}
			// The route pattern keeps cardinality bounded: the provider name
			// never becomes a label value here.
			assert.Equal(t, "/api/v1/providers/{provider}/payments", labels["path"])
			assert.Equal(t, http.MethodPost, labels["method"])
			assert.Equal(t, "200", labels["status"])
		case "paybridge_http_request_duration_seconds":
			duration = true
		}
	}
	assert.True(t, total, "request counter should be recorded")
	assert.True(t, duration, "duration histogram should be recorded")
}

func TestMetrics_RecordsErrorStatus(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics("paybridge", reg)

	r := gatewayRouter(metrics, http.StatusUnprocessableEntity)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/providers/worldpay/payments", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "paybridge_http_requests_total" {
			continue
		}
		for _, lp := range mf.Metric[0].Label {
			if lp.GetName() == "status" {
				assert.Equal(t, "422", lp.GetValue())
			}
		}
	}
}

func TestMetrics_DefaultStatusIs200(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics("paybridge", reg)

	// Handler writes the body without an explicit WriteHeader.
	r := chi.NewRouter()
	r.Use(Metrics(metrics))
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "paybridge_http_requests_total" {
			continue
		}
		for _, lp := range mf.Metric[0].Label {
			if lp.GetName() == "status" {
				assert.Equal(t, "200", lp.GetValue())
			}
		}
	}
}

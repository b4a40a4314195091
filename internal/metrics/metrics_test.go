package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPrediction_CountsByOutcome(t *testing.T) {
	t.Setenv("ENABLE_BUSINESS_METRICS", "true")
	initializeReportMetrics()

	high := riskPredictions.WithLabelValues("High Risk")
	before := testutil.ToFloat64(high)

	RecordPrediction("High Risk")
	RecordPrediction("High Risk")
	RecordPrediction("unavailable")

	assert.Equal(t, before+2, testutil.ToFloat64(high))
}

func TestRecordStoreOperation(t *testing.T) {
	t.Setenv("ENABLE_BUSINESS_METRICS", "true")
	initializeReportMetrics()

	counter := storeOperationsTotal.WithLabelValues("medical_history", "get", "not_found")
	before := testutil.ToFloat64(counter)

	RecordStoreOperation("medical_history", "get", "not_found", time.Now().Add(-20*time.Millisecond))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestMetricsMiddleware_LabelsByRouteTemplate(t *testing.T) {
	t.Setenv("ENABLE_BUSINESS_METRICS", "true")
	initializeHTTPMetrics()

	router := mux.NewRouter()
	router.Use(MetricsMiddleware)
	router.HandleFunc("/users/{userId}/report", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)

	counter := HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/users/{userId}/report", "404")
	before := testutil.ToFloat64(counter)

	for _, id := range []string{"u1", "u2"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/"+id+"/report", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	}

	assert.Equal(t, before+2, testutil.ToFloat64(counter))
}

func TestHandler_ServesRegistry(t *testing.T) {
	t.Setenv("ENABLE_BUSINESS_METRICS", "true")
	RecordReport("read", "All Vitals Normal")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "health_reports_generated_total")
}

func TestBusinessMetricsDisabled(t *testing.T) {
	t.Setenv("ENABLE_BUSINESS_METRICS", "false")

	assert.False(t, businessMetricsEnabled())
	assert.NotPanics(t, func() {
		RecordReport("write", "Low Risk Pregnancy")
		RecordHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)
	})
}

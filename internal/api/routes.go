package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"stealthcompany.com/maternalhealth/internal/metrics"
)

// SetupRoutes configures and returns the HTTP router
func SetupRoutes(h *Handlers) *mux.Router {
	r := mux.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(metrics.MetricsMiddleware)
	r.Use(LoggingMiddleware)

	r.HandleFunc("/health", h.HealthHandler).Methods(http.MethodGet)

	r.HandleFunc("/users/{userId}/report", h.GetReportHandler).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/history", h.GetHistoryHandler).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/history", h.PutHistoryHandler).Methods(http.MethodPut)

	// Prometheus metrics endpoint
	r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return r
}

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	reportsGenerated       *prometheus.CounterVec
	riskPredictions        *prometheus.CounterVec
	storeOperationsTotal   *prometheus.CounterVec
	storeOperationDuration *prometheus.HistogramVec

	reportMetricsOnce sync.Once
)

func initializeReportMetrics() {
	reportMetricsOnce.Do(func() {
		reportsGenerated = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "health_reports_generated_total",
				Help: "Total number of health reports assembled",
			},
			[]string{"path", "overall_status"},
		)

		riskPredictions = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "risk_predictions_total",
				Help: "Total number of risk predictions by outcome",
			},
			[]string{"outcome"},
		)

		storeOperationsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "store_operations_total",
				Help: "Total number of document store operations",
			},
			[]string{"collection", "operation", "result"},
		)

		storeOperationDuration = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "store_operation_duration_seconds",
				Help:    "Time spent in document store operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"collection", "operation"},
		)

		GetInstance().registry.MustRegister(
			reportsGenerated,
			riskPredictions,
			storeOperationsTotal,
			storeOperationDuration,
		)
	})
}

// RecordReport counts an assembled report. path is "read" or "write".
func RecordReport(path, overallStatus string) {
	if !businessMetricsEnabled() {
		return
	}
	initializeReportMetrics()

	reportsGenerated.WithLabelValues(path, overallStatus).Inc()
}

// RecordPrediction counts a risk prediction by label, or "unavailable"
func RecordPrediction(outcome string) {
	if !businessMetricsEnabled() {
		return
	}
	initializeReportMetrics()

	riskPredictions.WithLabelValues(outcome).Inc()
}

// RecordStoreOperation records the result and duration of a store call
func RecordStoreOperation(collection, operation, result string, startTime time.Time) {
	if !businessMetricsEnabled() {
		return
	}
	initializeReportMetrics()

	storeOperationsTotal.WithLabelValues(collection, operation, result).Inc()
	storeOperationDuration.WithLabelValues(collection, operation).Observe(time.Since(startTime).Seconds())
}

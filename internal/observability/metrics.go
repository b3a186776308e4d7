// Package observability provides Prometheus instrumentation for the
// ingestion and alerting pipeline.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the pipeline's Prometheus collectors on a private registry.
type Metrics struct {
	registry *prometheus.Registry

	readingsIngested *prometheus.CounterVec
	ingestErrors     *prometheus.CounterVec
	alertsOpened     *prometheus.CounterVec
	ingestDuration   prometheus.Histogram
}

// NewMetrics creates and registers all collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		readingsIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gardensense_readings_ingested_total",
			Help: "Number of sensor-type values durably written.",
		}, []string{"source"}),
		ingestErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gardensense_ingest_errors_total",
			Help: "Ingestion failures by stage.",
		}, []string{"stage"}),
		alertsOpened: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gardensense_alerts_opened_total",
			Help: "Alerts opened by severity.",
		}, []string{"severity"}),
		ingestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "gardensense_ingest_duration_seconds",
			Help:    "End-to-end latency of one ingestion request.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		m.readingsIngested,
		m.ingestErrors,
		m.alertsOpened,
		m.ingestDuration,
	)
	return m
}

// RecordReadings counts durably written sensor-type values.
func (m *Metrics) RecordReadings(source string, count int) {
	if m == nil {
		return
	}
	m.readingsIngested.WithLabelValues(source).Add(float64(count))
}

// RecordIngestError counts an ingestion failure for a pipeline stage.
func (m *Metrics) RecordIngestError(stage string) {
	if m == nil {
		return
	}
	m.ingestErrors.WithLabelValues(stage).Inc()
}

// RecordAlertOpened counts a newly opened alert.
func (m *Metrics) RecordAlertOpened(severity string) {
	if m == nil {
		return
	}
	m.alertsOpened.WithLabelValues(severity).Inc()
}

// ObserveIngestDuration records one ingestion request's latency in seconds.
func (m *Metrics) ObserveIngestDuration(seconds float64) {
	if m == nil {
		return
	}
	m.ingestDuration.Observe(seconds)
}

// Handler exposes the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

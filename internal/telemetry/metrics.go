package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the service.
type Metrics struct {
	LabelsTotal   *prometheus.CounterVec
	LabelDuration *prometheus.HistogramVec
	CarrierErrors *prometheus.CounterVec
	ParcelRedraws prometheus.Counter
}

// NewMetrics creates and registers Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		LabelsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gls_labels_total",
				Help: "Total label runs by outcome",
			},
			[]string{"status"},
		),
		LabelDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gls_label_duration_seconds",
				Help:    "Label run duration in seconds by outcome",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
		CarrierErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gls_carrier_errors_total",
				Help: "Carrier and pipeline errors by taxonomy code",
			},
			[]string{"code"},
		),
		ParcelRedraws: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "gls_parcel_number_redraws_total",
				Help: "Parcel number draws repeated after a uniqueness collision",
			},
		),
	}
}

// RecordLabelRun records the outcome and duration of one label run.
func (m *Metrics) RecordLabelRun(status string, duration float64) {
	m.LabelsTotal.WithLabelValues(status).Inc()
	m.LabelDuration.WithLabelValues(status).Observe(duration)
}

// RecordError records a pipeline error by taxonomy code.
func (m *Metrics) RecordError(code string) {
	m.CarrierErrors.WithLabelValues(code).Inc()
}

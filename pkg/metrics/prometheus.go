package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	upstreamRequests *prometheus.CounterVec
	errorsTotal      *prometheus.CounterVec
	lastPrice        *prometheus.GaugeVec
	latency          *prometheus.HistogramVec
	alertsTriggered  *prometheus.CounterVec
}

// New creates a recorder registered on the default Prometheus registry.
func New() *Recorder {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates a recorder registered on reg.
func NewWithRegistry(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		upstreamRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptointel_upstream_requests_total",
				Help: "Total number of upstream API requests by provider and outcome",
			},
			[]string{"provider", "outcome"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptointel_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		lastPrice: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "cryptointel_last_price",
				Help: "Last resolved USD price for a token",
			},
			[]string{"token"},
		),
		latency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "cryptointel_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		alertsTriggered: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cryptointel_alerts_triggered_total",
				Help: "Total number of alerts observed in triggered state",
			},
			[]string{"alert_type"},
		),
	}
}

// RecordUpstreamRequest counts one upstream call.
func (r *Recorder) RecordUpstreamRequest(provider, outcome string) {
	r.upstreamRequests.WithLabelValues(provider, outcome).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordLastPrice records the last price for a token.
func (r *Recorder) RecordLastPrice(token string, price float64) {
	r.lastPrice.WithLabelValues(token).Set(price)
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// RecordAlertTriggered counts an alert that evaluated as triggered.
func (r *Recorder) RecordAlertTriggered(alertType string) {
	r.alertsTriggered.WithLabelValues(alertType).Inc()
}

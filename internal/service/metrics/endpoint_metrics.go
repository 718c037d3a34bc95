package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	EndpointLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cryptointel",
			Subsystem: "endpoint",
			Name:      "latency_seconds",
			Help:      "Latency of intelligence endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	EndpointErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cryptointel",
			Subsystem: "endpoint",
			Name:      "errors_total",
			Help:      "Errors by endpoint",
		},
		[]string{"endpoint"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(EndpointLatency, EndpointErrors)
	})
}

// Observe records latency since start and counts err when non-nil.
func Observe(endpoint string, start time.Time, err error) {
	EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		EndpointErrors.WithLabelValues(endpoint).Inc()
	}
}

package llm

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	providerCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptforge",
			Subsystem: "llm",
			Name:      "provider_calls_total",
			Help:      "Total provider calls by operation and outcome",
		},
		[]string{"provider", "operation", "status"},
	)

	providerCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "promptforge",
			Subsystem: "llm",
			Name:      "provider_call_duration_seconds",
			Help:      "Provider call latency",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 40, 60},
		},
		[]string{"provider", "operation"},
	)
)

func recordProviderCall(provider, op string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	providerCallsTotal.WithLabelValues(provider, op, status).Inc()
	providerCallDuration.WithLabelValues(provider, op).Observe(d.Seconds())
}

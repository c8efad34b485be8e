package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	replayCallsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "promptforge",
			Subsystem: "conversation",
			Name:      "replay_calls_total",
			Help:      "Provider calls spent replaying stored user turns",
		},
	)

	transitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "promptforge",
			Subsystem: "conversation",
			Name:      "transitions_total",
			Help:      "Workflow transitions by action and outcome",
		},
		[]string{"action", "outcome"},
	)

	projectsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "promptforge",
			Subsystem: "projects",
			Name:      "created_total",
			Help:      "Projects persisted on approval",
		},
	)
)

func recordTransition(action string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	transitionsTotal.WithLabelValues(action, outcome).Inc()
}

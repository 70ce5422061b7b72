package robustness

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// verificationsTotal counts finished verifications by outcome
	verificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "robustscan_verifications_total",
		Help: "Total verifications by outcome",
	}, []string{"outcome"})

	// solveDuration tracks time spent inside the engine
	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "robustscan_solve_duration_seconds",
		Help:    "Engine solve duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms to ~4min
	})

	configurationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "robustscan_configuration_errors_total",
		Help: "Total queries rejected before reaching the engine",
	})
)

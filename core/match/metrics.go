package match

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	matchLatency     *prometheus.HistogramVec
	candidatesScored *prometheus.CounterVec
	exclusionsTotal  *prometheus.CounterVec
	noWinnerTotal    prometheus.Counter
	poolSize         prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.HistogramVec, *prometheus.CounterVec, *prometheus.CounterVec, prometheus.Counter, prometheus.Gauge) {
	lat := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "match_execution_latency_seconds",
			Help:    "Latency of a full matching pass from validation to selection",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"urgency"},
	)
	scored := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_scored_total",
			Help: "Number of doctor candidates scored",
		},
		[]string{"urgency"},
	)
	excl := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_excluded_total",
			Help: "Number of candidates excluded by hard constraints or bad data",
		},
		[]string{"reason"},
	)
	now := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "matches_without_winner_total",
			Help: "Number of matching passes that produced no winner",
		},
	)
	pool := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "candidate_pool_size",
			Help: "Number of candidates in the most recent pool snapshot",
		},
	)
	return lat, scored, excl, now, pool
}

func init() {
	matchLatency, candidatesScored, exclusionsTotal, noWinnerTotal, poolSize = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers matching metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(matchLatency, candidatesScored, exclusionsTotal, noWinnerTotal, poolSize)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	matchLatency, candidatesScored, exclusionsTotal, noWinnerTotal, poolSize = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}

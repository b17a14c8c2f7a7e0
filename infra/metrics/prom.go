package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/tabibiq/matchengine/core/metrics"
)

// PromSink records matching events in Prometheus metrics.
type PromSink struct {
	results *prometheus.CounterVec
	latency *prometheus.HistogramVec
	pool    prometheus.Gauge
}

// NewPromSink registers matching metrics on the default Prometheus
// registerer. The Prometheus server should be started separately using
// cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.MetricsSink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(cfg coremetrics.Config, reg prometheus.Registerer) (coremetrics.MetricsSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	results := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "match_results_total",
		Help: "Total number of ranked candidate records",
	}, []string{"urgency", "won", "excluded"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "match_pass_duration_seconds",
		Help:    "Wall-clock duration of a full matching pass",
		Buckets: prometheus.DefBuckets,
	}, []string{"urgency", "winner"})
	pool := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "match_ranked_candidates",
		Help: "Number of ranked candidates in the most recent matching pass",
	})

	if err := reg.Register(results); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			results = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(latency); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			latency = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(pool); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			pool = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{results: results, latency: latency, pool: pool}, nil
}

// RecordMatchResult increments the counter for each ranked candidate.
func (s *PromSink) RecordMatchResult(recs []coremetrics.MatchRecord) error {
	for _, r := range recs {
		s.results.WithLabelValues(
			r.Urgency.String(),
			strconv.FormatBool(r.Won),
			strconv.FormatBool(r.Excluded),
		).Inc()
	}
	return nil
}

// RecordMatchLatency records the duration of a matching pass.
func (s *PromSink) RecordMatchLatency(lat coremetrics.MatchLatency) error {
	s.latency.WithLabelValues(lat.Urgency.String(), strconv.FormatBool(lat.Winner)).Observe(lat.Elapsed.Seconds())
	return nil
}

// RecordPoolSize sets the gauge to the ranked candidate count.
func (s *PromSink) RecordPoolSize(size int) error {
	if s.pool != nil {
		s.pool.Set(float64(size))
	}
	return nil
}

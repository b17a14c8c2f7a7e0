package metrics

import coremetrics "github.com/tabibiq/matchengine/core/metrics"

// MultiSink fans match records out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordMatchResult forwards the records to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordMatchResult(recs []coremetrics.MatchRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordMatchResult(recs); err != nil {
			return err
		}
	}
	return nil
}

// RecordMatchLatency forwards latency metrics when supported by the sink.
func (m *MultiSink) RecordMatchLatency(lat coremetrics.MatchLatency) error {
	for _, s := range m.Sinks {
		if lr, ok := s.(coremetrics.LatencyRecorder); ok {
			if err := lr.RecordMatchLatency(lat); err != nil {
				return err
			}
		}
	}
	return nil
}

// RecordPoolSize forwards pool size metrics when supported by the sink.
func (m *MultiSink) RecordPoolSize(size int) error {
	for _, s := range m.Sinks {
		if pr, ok := s.(coremetrics.PoolSizeRecorder); ok {
			if err := pr.RecordPoolSize(size); err != nil {
				return err
			}
		}
	}
	return nil
}

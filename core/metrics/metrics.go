package metrics

import (
	"time"

	"github.com/tabibiq/matchengine/core/model"
)

// MatchRecord represents one ranked candidate of a matching pass to be
// recorded for auditability.
type MatchRecord struct {
	MatchID   string
	DoctorID  string
	Urgency   model.UrgencyLevel
	Rank      int
	Breakdown model.ScoreBreakdown
	Won       bool
	Excluded  bool
	Reason    string
	Time      time.Time
}

// MetricsSink records matching results for observability purposes.
type MetricsSink interface {
	RecordMatchResult(records []MatchRecord) error
}

// MatchLatency represents the wall-clock duration of a full matching pass.
type MatchLatency struct {
	MatchID string
	Urgency model.UrgencyLevel
	Winner  bool
	Elapsed time.Duration
}

// LatencyRecorder is implemented by sinks able to record match latency.
type LatencyRecorder interface {
	RecordMatchLatency(lat MatchLatency) error
}

// PoolSizeRecorder records the number of candidates supplied by the
// directory for a matching pass.
type PoolSizeRecorder interface {
	RecordPoolSize(size int) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordMatchResult([]MatchRecord) error { return nil }

// Ensure NopSink implements LatencyRecorder.
func (NopSink) RecordMatchLatency(MatchLatency) error { return nil }

// Ensure NopSink implements PoolSizeRecorder.
func (NopSink) RecordPoolSize(int) error { return nil }

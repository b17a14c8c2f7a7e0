package metrics

import (
	"testing"

	coremetrics "github.com/tabibiq/matchengine/core/metrics"
)

type recordSink struct {
	count int
}

func (r *recordSink) RecordMatchResult([]coremetrics.MatchRecord) error {
	r.count++
	return nil
}

func (r *recordSink) RecordMatchLatency(coremetrics.MatchLatency) error {
	r.count++
	return nil
}

func TestMultiSink(t *testing.T) {
	s1 := &recordSink{}
	s2 := &recordSink{}
	m := NewMultiSink(s1, s2)
	if err := m.RecordMatchResult(nil); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := m.RecordMatchLatency(coremetrics.MatchLatency{}); err != nil {
		t.Fatalf("record latency: %v", err)
	}
	if s1.count != 2 || s2.count != 2 {
		t.Fatalf("results not forwarded")
	}
}

func TestMultiSinkSkipsUnsupported(t *testing.T) {
	plain := coremetrics.NopSink{}
	m := NewMultiSink(plain)
	if err := m.RecordPoolSize(3); err != nil {
		t.Fatalf("pool size: %v", err)
	}
}

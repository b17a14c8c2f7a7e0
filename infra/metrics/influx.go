package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/tabibiq/matchengine/core/metrics"
	"github.com/tabibiq/matchengine/infra/logger"
)

// InfluxSink writes matching events to an InfluxDB instance using the
// official client. One point is written per ranked candidate per match,
// which keeps the full audit trail of a medical allocation decision.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordMatchResult writes each ranked candidate as a line protocol point.
func (s *InfluxSink) RecordMatchResult(recs []coremetrics.MatchRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("match_result").
			AddTag("match_id", r.MatchID).
			AddTag("doctor_id", r.DoctorID).
			AddTag("urgency", r.Urgency.String()).
			AddTag("won", strconv.FormatBool(r.Won)).
			AddTag("component", "match_engine").
			AddField("rank", r.Rank).
			AddField("composite_score", round3(r.Breakdown.CompositeScore)).
			AddField("skill_score", round3(r.Breakdown.SkillScore)).
			AddField("proximity_score", round3(r.Breakdown.ProximityScore)).
			AddField("price_score", round3(r.Breakdown.PriceScore)).
			AddField("network_score", round3(r.Breakdown.NetworkScore)).
			AddField("performance_score", round3(r.Breakdown.PerformanceScore)).
			AddField("estimated_cost", r.Breakdown.EstimatedCost).
			AddField("exclusion_reason", r.Reason).
			SetTime(r.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordMatchLatency persists the duration of a matching pass.
func (s *InfluxSink) RecordMatchLatency(lat coremetrics.MatchLatency) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("match_pass").
		AddTag("match_id", lat.MatchID).
		AddTag("urgency", lat.Urgency.String()).
		AddTag("winner", strconv.FormatBool(lat.Winner)).
		AddTag("component", "match_engine").
		AddField("elapsed_ms", round3(lat.Elapsed.Seconds()*1000)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying InfluxDB client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}

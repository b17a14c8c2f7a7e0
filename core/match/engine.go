package match

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/tabibiq/matchengine/core/events"
	"github.com/tabibiq/matchengine/core/logger"
	"github.com/tabibiq/matchengine/core/metrics"
	"github.com/tabibiq/matchengine/core/model"
	"github.com/tabibiq/matchengine/internal/eventbus"
)

// Engine evaluates one consultation request against a candidate pool and
// produces an AllocationResult. Scoring is pure over already-fetched inputs:
// candidates are scored independently and in parallel, joined at a barrier,
// then ranked and selected. The engine holds no state across calls, so the
// result is fully deterministic for identical inputs.
type Engine struct {
	skill       SkillScorer
	estimator   CostEstimator
	weights     Weights
	baseline    int64
	parallelism int
	log         logger.Logger
	sink        metrics.MetricsSink
	bus         eventbus.EventBus
}

// scored is the per-candidate join record collected at the barrier.
type scored struct {
	doctor    model.DoctorCandidate
	breakdown model.ScoreBreakdown
	reason    string
	err       error
}

// NewEngine creates an engine from the configuration. Logger and sink must
// not be nil; use infra NopLogger / metrics.NopSink to disable them. The bus
// may be nil when nothing observes matching events.
func NewEngine(cfg Config, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus) (*Engine, error) {
	if log == nil || sink == nil {
		return nil, fmt.Errorf("match: nil parameter provided to NewEngine")
	}
	cfg.SetDefaults()

	skill := NewSkillScorer()
	if len(cfg.RelatedTable) > 0 {
		skill.Related = lowerTable(cfg.RelatedTable)
	}
	if len(cfg.SymptomTable) > 0 {
		skill.Symptoms = lowerTable(cfg.SymptomTable)
	}
	estimator := NewCostEstimator()
	if len(cfg.BasePrices) > 0 {
		prices := make(map[string]int64, len(cfg.BasePrices))
		for k, v := range cfg.BasePrices {
			prices[lowerKey(k)] = v
		}
		estimator.BasePrices = prices
	}

	return &Engine{
		skill:       skill,
		estimator:   estimator,
		weights:     cfg.Weights,
		baseline:    cfg.MarketBaseline,
		parallelism: cfg.MaxParallelism,
		log:         log,
		sink:        sink,
		bus:         bus,
	}, nil
}

// Match runs one full matching pass: validate, fan out scoring, rank and
// select. Request validation errors are loud and immediate; per-candidate
// failures are contained and surface as exclusion reasons.
func (e *Engine) Match(ctx context.Context, req model.ConsultationRequest, pool []model.DoctorCandidate) (model.AllocationResult, error) {
	start := time.Now()
	if err := req.Validate(); err != nil {
		return model.AllocationResult{}, &InvalidRequestError{Reason: err.Error()}
	}

	matchID := uuid.NewString()
	poolSize.Set(float64(len(pool)))
	if e.bus != nil {
		e.bus.Publish(events.RequestEvent{MatchID: matchID, Request: req, PoolSize: len(pool)})
	}
	e.log.Infof("matching request %s: urgency=%s mode=%s pool=%d", matchID, req.UrgencyLevel, req.DeliveryMode, len(pool))

	results := e.scorePool(ctx, req, pool)
	if err := ctx.Err(); err != nil {
		return model.AllocationResult{}, err
	}

	result := e.rankAndSelect(matchID, req, results)
	elapsed := time.Since(start)
	matchLatency.WithLabelValues(req.UrgencyLevel.String()).Observe(elapsed.Seconds())
	if !result.HasWinner() {
		noWinnerTotal.Inc()
		e.log.Warnf("match %s produced no winner (%d candidates, %d excluded)",
			matchID, len(pool), len(result.ExclusionReasons))
	}
	if e.bus != nil {
		e.bus.Publish(events.AllocationEvent{Result: result, Urgency: req.UrgencyLevel, Elapsed: elapsed})
	}
	e.recordMetrics(req, result, elapsed)
	return result, nil
}

// scorePool fans out one scoring task per candidate and joins them at a
// barrier, capping in-flight goroutines at MaxParallelism when set. A
// failure scoring one candidate never cancels or corrupts the others.
func (e *Engine) scorePool(ctx context.Context, req model.ConsultationRequest, pool []model.DoctorCandidate) []scored {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		results = make([]scored, 0, len(pool))
		sem     chan struct{}
	)
	if e.parallelism > 0 {
		sem = make(chan struct{}, e.parallelism)
	}
	for _, doc := range pool {
		if ctx.Err() != nil {
			break
		}
		if sem != nil {
			sem <- struct{}{}
		}
		wg.Add(1)
		go func(doc model.DoctorCandidate) {
			defer wg.Done()
			if sem != nil {
				defer func() { <-sem }()
			}
			s := e.scoreCandidate(req, doc)
			mu.Lock()
			results = append(results, s)
			candidatesScored.WithLabelValues(req.UrgencyLevel.String()).Inc()
			mu.Unlock()
		}(doc)
	}
	wg.Wait()
	return results
}

// scoreCandidate computes the full breakdown for one candidate. Hard
// constraint violations zero the affected subscore and set the exclusion
// reason; malformed data sets err and excludes the candidate entirely.
func (e *Engine) scoreCandidate(req model.ConsultationRequest, doc model.DoctorCandidate) (out scored) {
	out.doctor = doc
	defer func() {
		if r := recover(); r != nil {
			out.err = fmt.Errorf("scoring panic: %v", r)
		}
	}()
	if err := doc.Validate(); err != nil {
		out.err = err
		return out
	}

	telemedicine := req.IsTelemedicine()
	cost := e.estimator.Estimate(doc.Specialty, req.UrgencyLevel, telemedicine)

	var b model.ScoreBreakdown
	b.EstimatedCost = cost
	b.SkillScore = e.skill.Score(doc.Specialty, req.RequiredSpecialty, req.Symptoms)

	if req.PatientLocation != nil {
		dist := Distance(*req.PatientLocation, doc.Location)
		b.ProximityScore = ProximityScore(dist, req.UrgencyLevel, req.MaxDistanceKm)
		if req.MaxDistanceKm > 0 && dist > req.MaxDistanceKm {
			out.reason = ReasonBeyondMaxDistance
		}
	} else {
		// Telemedicine without a location: the dimension cannot
		// differentiate, so the neutral default applies.
		b.ProximityScore = neutralScore
	}

	b.PriceScore = PriceScore(cost, req.MaxBudget, e.baseline)
	if req.MaxBudget > 0 && cost > req.MaxBudget {
		out.reason = ReasonOverBudget
	}

	b.NetworkScore = NetworkScore(doc.Network, telemedicine)
	b.PerformanceScore = PerformanceScore(doc.Performance, requiredOrDoctorSpecialty(req, doc))

	b.CompositeScore = e.composite(b, req.UrgencyLevel)
	if !doc.IsAvailable() {
		// Availability has no subscore of its own; the violation zeroes
		// the composite instead.
		b.CompositeScore = 0
		out.reason = ReasonUnavailable
	}
	out.breakdown = b
	return out
}

// composite aggregates the five subscores with urgency-shifted weights.
func (e *Engine) composite(b model.ScoreBreakdown, urgency model.UrgencyLevel) float64 {
	w := e.weights.forUrgency(urgency)
	scores := []float64{b.SkillScore, b.ProximityScore, b.PriceScore, b.NetworkScore, b.PerformanceScore}
	return clampScore(stat.Mean(scores, w.vector()))
}

// rankAndSelect orders the scored candidates by composite score, breaking
// ties by doctor ID, and picks the best violation-free candidate as winner.
func (e *Engine) rankAndSelect(matchID string, req model.ConsultationRequest, results []scored) model.AllocationResult {
	out := model.AllocationResult{
		MatchID:          matchID,
		ExclusionReasons: make(map[string]string),
	}

	ranked := make([]scored, 0, len(results))
	for _, s := range results {
		if s.err != nil {
			reason := fmt.Sprintf("invalid candidate data: %v", s.err)
			out.ExclusionReasons[s.doctor.DoctorID] = reason
			exclusionsTotal.WithLabelValues("invalid_data").Inc()
			e.publishExclusion(matchID, req, s.doctor.DoctorID, reason)
			e.log.Warnf("match %s: excluding %s: %v", matchID, s.doctor.DoctorID, s.err)
			continue
		}
		if s.reason != "" {
			out.ExclusionReasons[s.doctor.DoctorID] = s.reason
			exclusionsTotal.WithLabelValues(s.reason).Inc()
			e.publishExclusion(matchID, req, s.doctor.DoctorID, s.reason)
		}
		ranked = append(ranked, s)
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].breakdown.CompositeScore != ranked[j].breakdown.CompositeScore {
			return ranked[i].breakdown.CompositeScore > ranked[j].breakdown.CompositeScore
		}
		return ranked[i].doctor.DoctorID < ranked[j].doctor.DoctorID
	})

	for _, s := range ranked {
		out.RankedCandidates = append(out.RankedCandidates, model.RankedCandidate{
			DoctorID:  s.doctor.DoctorID,
			Breakdown: s.breakdown,
		})
		if out.WinningDoctorID == "" && s.reason == "" {
			out.WinningDoctorID = s.doctor.DoctorID
		}
	}
	return out
}

func (e *Engine) publishExclusion(matchID string, req model.ConsultationRequest, doctorID, reason string) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(events.ExclusionEvent{
		MatchID:  matchID,
		DoctorID: doctorID,
		Urgency:  req.UrgencyLevel,
		Reason:   reason,
	})
}

// recordMetrics persists the matching pass to the configured sink.
func (e *Engine) recordMetrics(req model.ConsultationRequest, res model.AllocationResult, elapsed time.Duration) {
	now := time.Now()
	recs := make([]metrics.MatchRecord, 0, len(res.RankedCandidates))
	for i, rc := range res.RankedCandidates {
		reason := res.ExclusionReasons[rc.DoctorID]
		recs = append(recs, metrics.MatchRecord{
			MatchID:   res.MatchID,
			DoctorID:  rc.DoctorID,
			Urgency:   req.UrgencyLevel,
			Rank:      i + 1,
			Breakdown: rc.Breakdown,
			Won:       rc.DoctorID == res.WinningDoctorID,
			Excluded:  reason != "",
			Reason:    reason,
			Time:      now,
		})
	}
	if err := e.sink.RecordMatchResult(recs); err != nil {
		e.log.Errorf("metrics error: %v", err)
	}
	if lr, ok := e.sink.(metrics.LatencyRecorder); ok {
		lat := metrics.MatchLatency{
			MatchID: res.MatchID,
			Urgency: req.UrgencyLevel,
			Winner:  res.HasWinner(),
			Elapsed: elapsed,
		}
		if err := lr.RecordMatchLatency(lat); err != nil {
			e.log.Errorf("latency metrics error: %v", err)
		}
	}
	if pr, ok := e.sink.(metrics.PoolSizeRecorder); ok {
		if err := pr.RecordPoolSize(len(res.RankedCandidates)); err != nil {
			e.log.Errorf("pool size metrics error: %v", err)
		}
	}
}

func requiredOrDoctorSpecialty(req model.ConsultationRequest, doc model.DoctorCandidate) string {
	if req.RequiredSpecialty != "" {
		return req.RequiredSpecialty
	}
	return doc.Specialty
}

func lowerKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func lowerTable(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[lowerKey(k)] = v
	}
	return out
}

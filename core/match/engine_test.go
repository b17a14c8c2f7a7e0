package match

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/tabibiq/matchengine/core/metrics"
	"github.com/tabibiq/matchengine/core/model"
)

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(Config{}, nopLogger{}, metrics.NopSink{}, nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

// pointAtKm returns a coordinate roughly km kilometers north of the origin.
func pointAtKm(origin model.GeoPoint, km float64) model.GeoPoint {
	return model.GeoPoint{Lat: origin.Lat + km/111.19, Lng: origin.Lng}
}

func cardiologist(id string, loc model.GeoPoint) model.DoctorCandidate {
	return model.DoctorCandidate{
		DoctorID:     id,
		Specialty:    "cardiology",
		Location:     loc,
		Availability: model.AvailabilityAvailable,
	}
}

func TestMatch_EmergencyChestPainScenario(t *testing.T) {
	e := newTestEngine(t)
	req := model.ConsultationRequest{
		Symptoms:          []string{"chest pain"},
		UrgencyLevel:      model.UrgencyEmergency,
		PatientLocation:   &baghdad,
		MaxBudget:         200000,
		MaxDistanceKm:     50,
		DeliveryMode:      model.DeliveryInPerson,
		RequiredSpecialty: "cardiology",
	}
	pool := []model.DoctorCandidate{
		cardiologist("dr-near", pointAtKm(baghdad, 2)),
		cardiologist("dr-mid", pointAtKm(baghdad, 30)),
		cardiologist("dr-far", pointAtKm(baghdad, 80)),
	}

	res, err := e.Match(context.Background(), req, pool)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if res.WinningDoctorID != "dr-near" {
		t.Fatalf("expected dr-near to win, got %q", res.WinningDoctorID)
	}
	if reason, ok := res.ExclusionReasons["dr-far"]; !ok || reason != ReasonBeyondMaxDistance {
		t.Fatalf("expected dr-far excluded by distance cutoff, got %v", res.ExclusionReasons)
	}
	if len(res.RankedCandidates) != 3 {
		t.Fatalf("zeroing policy keeps every candidate ranked, got %d", len(res.RankedCandidates))
	}
	for _, rc := range res.RankedCandidates {
		if rc.DoctorID == "dr-far" && rc.Breakdown.ProximityScore != 0 {
			t.Fatalf("dr-far proximity score %v, want 0", rc.Breakdown.ProximityScore)
		}
	}
}

func TestMatch_ExperiencedDoctorWinsOverUnknown(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		UrgencyLevel:      model.UrgencyLow,
		PatientLocation:   &loc,
		MaxBudget:         50000,
		DeliveryMode:      model.DeliveryTelemedicine,
		RequiredSpecialty: "family medicine",
	}
	rookie := model.DoctorCandidate{
		DoctorID: "dr-rookie", Specialty: "family medicine",
		Location: loc, Availability: model.AvailabilityAvailable,
	}
	veteran := model.DoctorCandidate{
		DoctorID: "dr-veteran", Specialty: "family medicine",
		Location: loc, Availability: model.AvailabilityAvailable,
		Performance: &model.PerformanceMetrics{
			TotalConsultations:      500,
			SuccessfulConsultations: 490,
			AvgResponseTime:         time.Minute,
			AvgConsultationDuration: 20 * time.Minute,
			PatientSatisfactionAvg:  4.9,
			SpecialtySuccessRates:   map[string]float64{"family medicine": 0.98},
		},
	}

	res, err := e.Match(context.Background(), req, []model.DoctorCandidate{rookie, veteran})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if res.WinningDoctorID != "dr-veteran" {
		t.Fatalf("expected dr-veteran to win, got %q", res.WinningDoctorID)
	}
	for _, rc := range res.RankedCandidates {
		switch rc.DoctorID {
		case "dr-rookie":
			if rc.Breakdown.PerformanceScore != 50 {
				t.Fatalf("rookie performance %v, want neutral 50", rc.Breakdown.PerformanceScore)
			}
		case "dr-veteran":
			if rc.Breakdown.PerformanceScore <= 90 {
				t.Fatalf("veteran performance %v, want > 90", rc.Breakdown.PerformanceScore)
			}
		}
	}
}

func TestMatch_EmptyPoolIsValidResult(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		UrgencyLevel:    model.UrgencyMedium,
		PatientLocation: &loc,
		DeliveryMode:    model.DeliveryInPerson,
	}
	res, err := e.Match(context.Background(), req, nil)
	if err != nil {
		t.Fatalf("empty pool must not error: %v", err)
	}
	if res.HasWinner() {
		t.Fatalf("unexpected winner %q", res.WinningDoctorID)
	}
}

func TestMatch_InvalidRequestFailsFast(t *testing.T) {
	e := newTestEngine(t)
	req := model.ConsultationRequest{
		UrgencyLevel: model.UrgencyHigh,
		DeliveryMode: model.DeliveryInPerson, // no location
	}
	_, err := e.Match(context.Background(), req, []model.DoctorCandidate{cardiologist("dr-1", baghdad)})
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
}

func TestMatch_CorruptCandidateIsIsolated(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		UrgencyLevel:      model.UrgencyMedium,
		PatientLocation:   &loc,
		DeliveryMode:      model.DeliveryInPerson,
		RequiredSpecialty: "cardiology",
	}
	corrupt := cardiologist("dr-corrupt", loc)
	corrupt.Performance = &model.PerformanceMetrics{
		TotalConsultations:      10,
		SuccessfulConsultations: 20, // impossible
	}
	healthy := cardiologist("dr-ok", loc)

	res, err := e.Match(context.Background(), req, []model.DoctorCandidate{corrupt, healthy})
	if err != nil {
		t.Fatalf("corrupt candidate must not abort the pool: %v", err)
	}
	if res.WinningDoctorID != "dr-ok" {
		t.Fatalf("expected dr-ok to win, got %q", res.WinningDoctorID)
	}
	if reason := res.ExclusionReasons["dr-corrupt"]; !strings.Contains(reason, "invalid candidate data") {
		t.Fatalf("expected invalid data reason, got %q", reason)
	}
	for _, rc := range res.RankedCandidates {
		if rc.DoctorID == "dr-corrupt" {
			t.Fatal("corrupt candidate must not appear in the ranking")
		}
	}
}

func TestMatch_UnavailableDoctorCannotWin(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		UrgencyLevel:      model.UrgencyHigh,
		PatientLocation:   &loc,
		DeliveryMode:      model.DeliveryInPerson,
		RequiredSpecialty: "cardiology",
	}
	busy := cardiologist("dr-busy", loc)
	busy.Availability = model.AvailabilityBusy

	res, err := e.Match(context.Background(), req, []model.DoctorCandidate{busy})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if res.HasWinner() {
		t.Fatalf("unavailable doctor won: %q", res.WinningDoctorID)
	}
	if res.ExclusionReasons["dr-busy"] != ReasonUnavailable {
		t.Fatalf("expected unavailable reason, got %v", res.ExclusionReasons)
	}
}

func TestMatch_Deterministic(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		Symptoms:          []string{"chest pain"},
		UrgencyLevel:      model.UrgencyHigh,
		PatientLocation:   &loc,
		DeliveryMode:      model.DeliveryInPerson,
		RequiredSpecialty: "cardiology",
	}
	pool := []model.DoctorCandidate{
		cardiologist("dr-a", pointAtKm(loc, 4)),
		cardiologist("dr-b", pointAtKm(loc, 12)),
		cardiologist("dr-c", pointAtKm(loc, 25)),
	}

	first, err := e.Match(context.Background(), req, pool)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := e.Match(context.Background(), req, pool)
		if err != nil {
			t.Fatalf("match: %v", err)
		}
		if again.WinningDoctorID != first.WinningDoctorID {
			t.Fatalf("winner changed between runs: %q vs %q", again.WinningDoctorID, first.WinningDoctorID)
		}
		for j := range first.RankedCandidates {
			if again.RankedCandidates[j].DoctorID != first.RankedCandidates[j].DoctorID {
				t.Fatalf("ranking order changed between runs at position %d", j)
			}
			if again.RankedCandidates[j].Breakdown != first.RankedCandidates[j].Breakdown {
				t.Fatalf("breakdown changed between runs for %s", first.RankedCandidates[j].DoctorID)
			}
		}
	}
}

func TestMatch_TieBreakByDoctorID(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		UrgencyLevel:      model.UrgencyMedium,
		PatientLocation:   &loc,
		DeliveryMode:      model.DeliveryInPerson,
		RequiredSpecialty: "cardiology",
	}
	pool := []model.DoctorCandidate{
		cardiologist("dr-zeta", loc),
		cardiologist("dr-alpha", loc),
	}

	res, err := e.Match(context.Background(), req, pool)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if res.RankedCandidates[0].DoctorID != "dr-alpha" {
		t.Fatalf("tie should break by doctor id, got %q first", res.RankedCandidates[0].DoctorID)
	}
	if res.WinningDoctorID != "dr-alpha" {
		t.Fatalf("expected dr-alpha to win the tie, got %q", res.WinningDoctorID)
	}
}

func TestMatch_CancelledContext(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		UrgencyLevel:    model.UrgencyMedium,
		PatientLocation: &loc,
		DeliveryMode:    model.DeliveryInPerson,
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := e.Match(ctx, req, []model.DoctorCandidate{cardiologist("dr-1", loc)})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestMatch_BoundedParallelism(t *testing.T) {
	e, err := NewEngine(Config{MaxParallelism: 2}, nopLogger{}, metrics.NopSink{}, nil)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	loc := baghdad
	req := model.ConsultationRequest{
		UrgencyLevel:      model.UrgencyMedium,
		PatientLocation:   &loc,
		DeliveryMode:      model.DeliveryInPerson,
		RequiredSpecialty: "cardiology",
	}
	pool := make([]model.DoctorCandidate, 0, 20)
	for i := 0; i < 20; i++ {
		pool = append(pool, cardiologist(fmt.Sprintf("dr-%02d", i), pointAtKm(loc, float64(i))))
	}

	res, err := e.Match(context.Background(), req, pool)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if len(res.RankedCandidates) != len(pool) {
		t.Fatalf("expected all %d candidates ranked, got %d", len(pool), len(res.RankedCandidates))
	}
	if res.WinningDoctorID != "dr-00" {
		t.Fatalf("expected closest doctor to win, got %q", res.WinningDoctorID)
	}
}

func TestMatch_SubscoresWithinBounds(t *testing.T) {
	e := newTestEngine(t)
	loc := baghdad
	req := model.ConsultationRequest{
		Symptoms:          []string{"chest pain", "shortness of breath"},
		UrgencyLevel:      model.UrgencyEmergency,
		PatientLocation:   &loc,
		DeliveryMode:      model.DeliveryTelemedicine,
		RequiredSpecialty: "cardiology",
	}
	doc := cardiologist("dr-1", pointAtKm(loc, 15))
	doc.Network = &model.NetworkQualityMetrics{AvgLatencyMs: 80, AvgBandwidthMbps: 8, ConnectionDropRate: 0.02, AvgJitterMs: 15, GoodCount: 40}
	doc.Performance = solidRecord()

	res, err := e.Match(context.Background(), req, []model.DoctorCandidate{doc})
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	b := res.RankedCandidates[0].Breakdown
	for name, s := range map[string]float64{
		"skill":       b.SkillScore,
		"proximity":   b.ProximityScore,
		"price":       b.PriceScore,
		"network":     b.NetworkScore,
		"performance": b.PerformanceScore,
		"composite":   b.CompositeScore,
	} {
		if s < 0 || s > 100 {
			t.Fatalf("%s score %v out of bounds", name, s)
		}
	}
	if b.EstimatedCost <= 0 {
		t.Fatalf("estimated cost %d must be positive", b.EstimatedCost)
	}
}

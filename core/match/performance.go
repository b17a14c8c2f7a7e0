package match

import (
	"math"
	"strings"

	"github.com/tabibiq/matchengine/core/model"
)

// minPerformanceSample is the consultation count below which a track record
// is not statistically meaningful and the neutral default applies.
const minPerformanceSample = 10

// performance composite weights.
const (
	perfSuccessWeight      = 0.30
	perfSpecialtyWeight    = 0.25
	perfResponseWeight     = 0.20
	perfSatisfactionWeight = 0.15
	perfDurationWeight     = 0.10
)

// PerformanceScore rates a doctor's track record on 0-100 for the given
// specialty. Missing metrics or a sample too small to mean anything yield
// the neutral default. Faster response never scores lower than slower, all
// else being equal.
func PerformanceScore(metrics *model.PerformanceMetrics, specialty string) float64 {
	if metrics == nil || metrics.TotalConsultations < minPerformanceSample {
		return neutralScore
	}

	successRate := float64(metrics.SuccessfulConsultations) / float64(metrics.TotalConsultations)

	specialtyRate := successRate
	if rate, ok := metrics.SpecialtySuccessRates[strings.ToLower(strings.TrimSpace(specialty))]; ok {
		specialtyRate = rate
	}

	// Exponential decay keeps the response component strictly monotonic
	// in response time.
	responseScore := clampScore(100 * math.Exp(-metrics.AvgResponseTime.Minutes()/30))

	composite := successRate*100*perfSuccessWeight +
		specialtyRate*100*perfSpecialtyWeight +
		responseScore*perfResponseWeight +
		satisfactionScore(metrics.PatientSatisfactionAvg)*perfSatisfactionWeight +
		durationBandScore(metrics.AvgConsultationDuration.Minutes())*perfDurationWeight
	return clampScore(composite)
}

// satisfactionScore normalizes the 1-5 satisfaction average onto 0-100.
// A zero value means no ratings yet and maps to the neutral default.
func satisfactionScore(avg float64) float64 {
	if avg == 0 {
		return neutralScore
	}
	return clampScore((avg - 1) / 4 * 100)
}

// durationBandScore prefers consultations that are neither rushed nor
// excessively long. The full score covers the 10-30 minute band.
func durationBandScore(minutes float64) float64 {
	switch {
	case minutes <= 0:
		return neutralScore
	case minutes < 10:
		return clampScore(minutes / 10 * 100)
	case minutes <= 30:
		return 100
	default:
		return clampScore(100 - 2*(minutes-30))
	}
}

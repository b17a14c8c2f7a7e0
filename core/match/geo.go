package match

import (
	"math"

	"github.com/tabibiq/matchengine/core/model"
)

const earthRadiusKm = 6371.0

// urgency-specific proximity tuning. Ideal is the distance up to which a
// candidate scores the full 100; decay is the e-folding distance of the
// drop-off beyond it. Higher urgency means a tighter ideal and a steeper
// decay, so for any fixed distance score(EMERGENCY) <= score(LOW).
var proximityProfiles = map[model.UrgencyLevel]struct {
	IdealKm float64
	DecayKm float64
}{
	model.UrgencyEmergency: {IdealKm: 5, DecayKm: 10},
	model.UrgencyHigh:      {IdealKm: 10, DecayKm: 20},
	model.UrgencyMedium:    {IdealKm: 25, DecayKm: 40},
	model.UrgencyLow:       {IdealKm: 50, DecayKm: 80},
}

// Distance returns the great-circle distance in kilometers between two
// coordinates using the haversine formula.
func Distance(a, b model.GeoPoint) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusKm * math.Asin(math.Min(1, math.Sqrt(h)))
}

// ProximityScore maps a distance to a 0-100 score. The score is 100 at or
// under the urgency's ideal distance and decays exponentially past it.
// A maxDistanceKm greater than zero is a hard cutoff: anything beyond it
// scores 0 regardless of urgency.
func ProximityScore(distanceKm float64, urgency model.UrgencyLevel, maxDistanceKm float64) float64 {
	if distanceKm < 0 {
		return 0
	}
	if maxDistanceKm > 0 && distanceKm > maxDistanceKm {
		return 0
	}
	prof, ok := proximityProfiles[urgency]
	if !ok {
		prof = proximityProfiles[model.UrgencyMedium]
	}
	if distanceKm <= prof.IdealKm {
		return 100
	}
	return clampScore(100 * math.Exp(-(distanceKm-prof.IdealKm)/prof.DecayKm))
}

// clampScore bounds a score to the [0,100] range every subscore must hold.
func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}

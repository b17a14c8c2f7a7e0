package match

import "github.com/tabibiq/matchengine/core/model"

// Weights defines the relative importance of each scoring dimension when
// aggregating the composite score.
type Weights struct {
	Skill       float64 `json:"skill"`
	Proximity   float64 `json:"proximity"`
	Price       float64 `json:"price"`
	Network     float64 `json:"network"`
	Performance float64 `json:"performance"`
}

// DefaultWeights returns the baseline weights used at MEDIUM urgency.
func DefaultWeights() Weights {
	return Weights{
		Skill:       0.30,
		Proximity:   0.20,
		Price:       0.15,
		Network:     0.15,
		Performance: 0.20,
	}
}

// forUrgency shifts the baseline weights with the urgency level. Higher
// urgency emphasises proximity and performance and de-emphasises price.
func (w Weights) forUrgency(u model.UrgencyLevel) Weights {
	shifted := w
	switch u {
	case model.UrgencyEmergency:
		shifted.Proximity += 0.15
		shifted.Performance += 0.10
		shifted.Price -= 0.10
	case model.UrgencyHigh:
		shifted.Proximity += 0.10
		shifted.Performance += 0.05
		shifted.Price -= 0.05
	case model.UrgencyLow:
		shifted.Price += 0.05
		shifted.Proximity -= 0.05
	}
	if shifted.Price < 0.05 {
		shifted.Price = 0.05
	}
	return shifted
}

// vector returns the weights in subscore order for the weighted mean.
func (w Weights) vector() []float64 {
	return []float64{w.Skill, w.Proximity, w.Price, w.Network, w.Performance}
}

package match

import (
	"math"
	"strings"

	"github.com/tabibiq/matchengine/core/model"
)

// CostEstimator computes the expected consultation price from the static
// price table, the urgency multiplier and the delivery mode.
type CostEstimator struct {
	BasePrices map[string]int64
}

// NewCostEstimator returns an estimator backed by the default price table.
func NewCostEstimator() CostEstimator {
	return CostEstimator{BasePrices: defaultBasePrices}
}

// Estimate returns the estimated price in IQD. The result is always
// positive: unknown specialties fall back to the default base price and the
// telemedicine discount is applied after the urgency multiplier.
func (c CostEstimator) Estimate(specialty string, urgency model.UrgencyLevel, telemedicine bool) int64 {
	base, ok := c.BasePrices[strings.ToLower(strings.TrimSpace(specialty))]
	if !ok || base <= 0 {
		base = defaultBasePrice
	}
	mult, ok := urgencyMultipliers[urgency]
	if !ok {
		mult = 1.0
	}
	price := float64(base) * mult
	if telemedicine {
		price *= telemedicineDiscount
	}
	cost := int64(math.Round(price))
	if cost < 1 {
		cost = 1
	}
	return cost
}

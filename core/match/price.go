package match

// PriceScore rates cost-efficiency on a 0-100 scale.
//
// With a budget (maxBudget > 0) a cost above it is a hard reject scoring 0.
// Within budget the score rewards low budget utilization: half the budget
// scores strictly higher than ninety percent of it. Without a budget the
// cost is compared to the market baseline, below-baseline costs scoring
// higher than above-baseline ones.
func PriceScore(cost, maxBudget, marketBaseline int64) float64 {
	if cost <= 0 {
		return 0
	}
	if maxBudget > 0 {
		if cost > maxBudget {
			return 0
		}
		utilization := float64(cost) / float64(maxBudget)
		return clampScore(100 * (1 - utilization))
	}
	if marketBaseline <= 0 {
		// No reference at all: the dimension cannot differentiate.
		return 50
	}
	ratio := float64(cost) / float64(marketBaseline)
	return clampScore(100 * (1 - ratio/2))
}

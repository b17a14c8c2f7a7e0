package match

import (
	"strings"

	"github.com/tabibiq/matchengine/core/model"
)

// neutralScore is assigned when history is missing: absence of data must
// not be penalized as poor data.
const neutralScore = 50.0

// network composite weights. Drop rate and latency dominate.
const (
	netDropWeight      = 0.30
	netLatencyWeight   = 0.25
	netTierWeight      = 0.15
	netBandwidthWeight = 0.10
	netJitterWeight    = 0.10
	netLastWeight      = 0.10
)

// NetworkScore rates connection suitability for telemedicine on 0-100.
// When telemedicine is not required the dimension is irrelevant and scores
// 100. When required but no telemetry exists the neutral default applies.
func NetworkScore(metrics *model.NetworkQualityMetrics, telemedicineRequired bool) float64 {
	if !telemedicineRequired {
		return 100
	}
	if metrics == nil {
		return neutralScore
	}

	latency := clampScore(100 * (500 - metrics.AvgLatencyMs) / 450)
	if metrics.AvgLatencyMs <= 50 {
		latency = 100
	}
	bandwidth := clampScore(metrics.AvgBandwidthMbps * 10)
	drop := clampScore(100 * (1 - metrics.ConnectionDropRate/0.2))
	jitter := clampScore(100 * (100 - metrics.AvgJitterMs) / 90)
	if metrics.AvgJitterMs <= 10 {
		jitter = 100
	}

	composite := drop*netDropWeight +
		latency*netLatencyWeight +
		tierHistoryScore(metrics)*netTierWeight +
		bandwidth*netBandwidthWeight +
		jitter*netJitterWeight +
		lastQualityScore(metrics.LastQuality)*netLastWeight
	return clampScore(composite)
}

// tierHistoryScore averages the historical quality tier distribution.
func tierHistoryScore(m *model.NetworkQualityMetrics) float64 {
	total := m.ExcellentCount + m.GoodCount + m.FairCount + m.PoorCount
	if total <= 0 {
		return neutralScore
	}
	sum := float64(m.ExcellentCount)*100 +
		float64(m.GoodCount)*70 +
		float64(m.FairCount)*40 +
		float64(m.PoorCount)*10
	return sum / float64(total)
}

func lastQualityScore(last string) float64 {
	switch strings.ToLower(strings.TrimSpace(last)) {
	case "excellent":
		return 100
	case "good":
		return 70
	case "fair":
		return 40
	case "poor":
		return 10
	default:
		return neutralScore
	}
}

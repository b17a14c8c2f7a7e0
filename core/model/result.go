package model

// ScoreBreakdown carries the per-dimension subscores for one candidate.
// Every subscore is in [0,100]; the composite aggregates them with
// urgency-dependent weights. Produced fresh for each request.
type ScoreBreakdown struct {
	SkillScore       float64 `json:"skill_score"`
	ProximityScore   float64 `json:"proximity_score"`
	PriceScore       float64 `json:"price_score"`
	NetworkScore     float64 `json:"network_score"`
	PerformanceScore float64 `json:"performance_score"`
	CompositeScore   float64 `json:"composite_score"`
	EstimatedCost    int64   `json:"estimated_cost"` // IQD
}

// RankedCandidate pairs a doctor with its score breakdown in the ranking.
type RankedCandidate struct {
	DoctorID  string         `json:"doctor_id"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}

// AllocationResult is the terminal output of one matching pass.
// WinningDoctorID is empty when no candidate survives the hard constraints;
// that is a valid outcome, not an error.
type AllocationResult struct {
	MatchID          string            `json:"match_id"`
	RankedCandidates []RankedCandidate `json:"ranked_candidates"`
	WinningDoctorID  string            `json:"winning_doctor_id,omitempty"`
	ExclusionReasons map[string]string `json:"exclusion_reasons,omitempty"`
}

// HasWinner reports whether a candidate was selected.
func (r AllocationResult) HasWinner() bool { return r.WinningDoctorID != "" }

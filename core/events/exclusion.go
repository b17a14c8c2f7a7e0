package events

import "github.com/tabibiq/matchengine/core/model"

// ExclusionEvent is emitted when a candidate is barred from winning.
// Reason can be "over_budget", "beyond_max_distance", "unavailable" or an
// invalid-data description.
type ExclusionEvent struct {
	MatchID  string
	DoctorID string
	Urgency  model.UrgencyLevel
	Reason   string
}

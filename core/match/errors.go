package match

import "fmt"

// InvalidRequestError reports a consultation request that cannot be matched
// at all. It fails the whole call before any candidate is scored.
type InvalidRequestError struct {
	Reason string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid consultation request: %s", e.Reason)
}

// Exclusion reasons attached to candidates barred from winning. Malformed
// candidate data produces a free-form reason instead.
const (
	ReasonOverBudget        = "over_budget"
	ReasonBeyondMaxDistance = "beyond_max_distance"
	ReasonUnavailable       = "unavailable"
)

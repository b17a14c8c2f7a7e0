package events

import (
	"time"

	"github.com/tabibiq/matchengine/core/model"
)

// AllocationEvent is published once per matching pass with the final result.
type AllocationEvent struct {
	Result  model.AllocationResult
	Urgency model.UrgencyLevel
	Elapsed time.Duration
}

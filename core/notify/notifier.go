// Package notify defines the outbound interface used to hand allocation
// results to the scheduling/notification collaborator. The engine itself
// owns no transport; implementations live in infra.
package notify

import "github.com/tabibiq/matchengine/core/model"

// Notifier pushes a terminal allocation result to the outside world.
type Notifier interface {
	PublishAllocation(result model.AllocationResult) error
}

// NopNotifier discards allocation results.
type NopNotifier struct{}

func (NopNotifier) PublishAllocation(model.AllocationResult) error { return nil }

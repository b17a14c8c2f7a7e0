// Package events defines the matching related events emitted on the event bus.
//
// Available event types:
//   - RequestEvent: new consultation request entering the engine
//   - ExclusionEvent: candidate removed from contention by a hard constraint
//   - AllocationEvent: terminal allocation result of a matching pass
package events

package mqtt

import (
	"sync"

	"github.com/tabibiq/matchengine/core/model"
)

// MockNotifier records published allocation results for tests.
type MockNotifier struct {
	mu      sync.Mutex
	Results []model.AllocationResult
	Fail    error
}

// NewMockNotifier creates a new MockNotifier.
func NewMockNotifier() *MockNotifier {
	return &MockNotifier{}
}

// PublishAllocation records the result or returns the configured error.
func (m *MockNotifier) PublishAllocation(result model.AllocationResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.Results = append(m.Results, result)
	return nil
}

// Published returns a copy of the recorded results.
func (m *MockNotifier) Published() []model.AllocationResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.AllocationResult, len(m.Results))
	copy(out, m.Results)
	return out
}

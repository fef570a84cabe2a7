package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a hand-cranked TimeProvider for deterministic tests:
// time stands still until the test advances it, so orbital positions and
// pause accounting can be asserted exactly.
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance cranks the test clock forward by d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

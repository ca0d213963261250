package oracle

import (
	"context"
	"fmt"
	"sync"

	"github.com/selection-crew/selection-service/internal/models"
)

// MockOracle returns canned analyses keyed by student ID. Unknown students
// produce an error, which mirrors a failed transcript analysis.
type MockOracle struct {
	mu      sync.Mutex
	Results map[string]*models.VideoAnalysis
	calls   []string
}

func NewMockOracle() *MockOracle {
	return &MockOracle{Results: make(map[string]*models.VideoAnalysis)}
}

func (m *MockOracle) Analyze(ctx context.Context, studentID, transcript string) (*models.VideoAnalysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, studentID)
	result, ok := m.Results[studentID]
	if !ok {
		return nil, fmt.Errorf("mock oracle: no analysis configured for %s", studentID)
	}
	out := *result
	return &out, nil
}

// Calls returns the student IDs analyzed so far, in order.
func (m *MockOracle) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

package store

import (
	"sync"

	"github.com/akpradhn/nitiArthik/internal/models"
)

// MockStore is an in-memory Store for tests.
type MockStore struct {
	mu       sync.Mutex
	Err      error
	outcomes map[string]models.ParseOutcome
}

// NewMockStore returns an empty MockStore.
func NewMockStore() *MockStore {
	return &MockStore{outcomes: make(map[string]models.ParseOutcome)}
}

// SaveOutcome implements Store.
func (m *MockStore) SaveOutcome(documentID string, _ models.DocumentMeta, outcome models.ParseOutcome) error {
	if m.Err != nil {
		return m.Err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[documentID] = outcome
	return nil
}

// Outcome returns the saved outcome for a document.
func (m *MockStore) Outcome(documentID string) (models.ParseOutcome, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.outcomes[documentID]
	return o, ok
}

// Count returns how many documents have saved outcomes.
func (m *MockStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.outcomes)
}

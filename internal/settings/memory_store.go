package settings

import "sync"

// MemoryStore holds settings in memory. Used in tests and as a fallback
// when no settings path is available.
type MemoryStore struct {
	mu sync.Mutex
	s  Settings
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load() (Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.s.WithDefaults(), nil
}

func (m *MemoryStore) Set(field string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return apply(&m.s, field, value)
}

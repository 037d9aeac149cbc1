package db

import "sync"

// Memory is a map-backed document store with the same contract as Documents.
// Tests use it to get isolated stores without touching the filesystem.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory creates an empty in-memory document store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

// Get returns the body of the named document, with ok=false if absent.
func (m *Memory) Get(key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	body, ok := m.docs[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(body))
	copy(out, body)
	return out, true, nil
}

// Put overwrites the named document wholesale.
func (m *Memory) Put(key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(body))
	copy(stored, body)
	m.docs[key] = stored
	return nil
}

// Delete removes the named document.
func (m *Memory) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.docs, key)
	return nil
}

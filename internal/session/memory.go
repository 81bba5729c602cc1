package session

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is a process-local Store used in tests and local
// development without Redis.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, sessionID, key string, dest interface{}) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.data[sessionID]
	if !ok {
		return false, nil
	}
	raw, ok := sess[key]
	if !ok {
		return false, nil
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) Set(ctx context.Context, sessionID, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[sessionID] == nil {
		m.data[sessionID] = make(map[string][]byte)
	}
	m.data[sessionID][key] = raw
	return nil
}

func (m *MemoryStore) Clear(ctx context.Context, sessionID string, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.data[sessionID]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(sess, k)
	}
	return nil
}

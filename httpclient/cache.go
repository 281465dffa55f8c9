package httpclient

import (
	"encoding/json"
	"sync"
)

// Memo is a process-lifetime cache of JSON-encodable values. Entries are
// never invalidated. It is safe for concurrent use.
type Memo struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemo creates an empty cache.
func NewMemo() *Memo {
	return &Memo{entries: make(map[string][]byte)}
}

// Get decodes the entry for key into v and reports whether it existed.
func (m *Memo) Get(key string, v any) bool {
	m.mu.RLock()
	data, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// Set stores v under key.
func (m *Memo) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.entries[key] = data
	m.mu.Unlock()
	return nil
}

// Len returns the number of entries.
func (m *Memo) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

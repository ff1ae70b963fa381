// Package persist provides the key/value stores a session saves its high score to.
// Every store satisfies game.Store and is safe for concurrent use.
package persist

import "sync"

// Memory keeps values for the lifetime of the process.
type Memory struct {
	mu     sync.Mutex
	values map[string]int
}

func NewMemory() *Memory {
	return &Memory{values: make(map[string]int)}
}

func (m *Memory) GetInt(key string, def int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return def
}

// Lookup reports the stored value and whether one exists.
func (m *Memory) Lookup(key string) (int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *Memory) SetInt(key string, value int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
}

// Snapshot copies every stored value.
func (m *Memory) Snapshot() map[string]int {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out
}

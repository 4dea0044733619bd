package sim

import (
	"sync"

	"github.com/vovakirdan/tapcricket/internal/core"
)

// MemoryKV is an in-process core.KVStore used when no database is available.
type MemoryKV struct {
	mu   sync.Mutex
	vals map[string]int
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{vals: make(map[string]int)}
}

// GetInt implements core.KVStore.
func (m *MemoryKV) GetInt(key string) (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vals[key]
	return v, ok, nil
}

// SetInt implements core.KVStore.
func (m *MemoryKV) SetInt(key string, value int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.vals[key] = value
	return nil
}

var _ core.KVStore = (*MemoryKV)(nil)

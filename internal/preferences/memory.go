package preferences

import (
	"context"
	"slices"
	"sync"

	"github.com/escalopa/quran-reader/internal/domain"
)

// MemoryBackend keeps slots in a map. Used by unit tests; the memory storage
// driver runs badger in in-memory mode instead.
type MemoryBackend struct {
	mu    sync.RWMutex
	slots map[string][]byte

	// SaveErr, when set, is returned by every Save
	SaveErr error
	// LoadErr, when set, is returned by every Load
	LoadErr error
}

var _ domain.PreferenceBackend = (*MemoryBackend)(nil)

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[string][]byte)}
}

func (m *MemoryBackend) Load(_ context.Context, slot string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	data, ok := m.slots[slot]
	if !ok {
		return nil, domain.ErrSlotNotFound
	}
	return slices.Clone(data), nil
}

func (m *MemoryBackend) Save(_ context.Context, slot string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.slots[slot] = slices.Clone(data)
	return nil
}

// Put stores raw bytes under a slot, bypassing SaveErr
func (m *MemoryBackend) Put(slot string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[slot] = slices.Clone(data)
}

package preferences

import (
	"log/slog"
	"sync"

	"github.com/escalopa/quran-reader/internal/domain"
)

// Registry hands out one Store per user so every component of a user shares
// the same in-memory record.
type Registry struct {
	backend domain.PreferenceBackend
	log     *slog.Logger

	mu     sync.Mutex
	stores map[string]*Store
}

func NewRegistry(backend domain.PreferenceBackend, log *slog.Logger) *Registry {
	return &Registry{
		backend: backend,
		log:     log,
		stores:  make(map[string]*Store),
	}
}

// Slot returns the storage slot name of a user
func Slot(userID string) string {
	return domain.PreferencesSlot + ":" + userID
}

// For returns the user's store, creating it on first use
func (r *Registry) For(userID string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.stores[userID]; ok {
		return s
	}
	s := NewStore(r.backend, Slot(userID), r.log.With("user_id", userID))
	r.stores[userID] = s
	return s
}

// Forget drops the cached store; the next For reloads from the backend
func (r *Registry) Forget(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.stores, userID)
}

// Len returns the number of cached stores
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.stores)
}

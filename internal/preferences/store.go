// Package preferences keeps one user's ReadingPreferences in memory and
// mirrors every change to a durable backend on a best-effort basis.
package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"github.com/escalopa/quran-reader/internal/domain"
)

// Store is the single owned handle to a user's preferences record.
// All mutation goes through Write or Update; reads return deep copies.
type Store struct {
	backend domain.PreferenceBackend
	slot    string
	log     *slog.Logger

	mu     sync.Mutex
	loaded bool
	value  domain.ReadingPreferences
	// updates applied while the slot could not be loaded, replayed over the
	// stored record once a load succeeds
	pending []func(domain.ReadingPreferences) domain.ReadingPreferences
}

var _ domain.PreferenceStore = (*Store)(nil)

// NewStore creates a store over the given backend slot. Nothing is loaded until the first access.
func NewStore(backend domain.PreferenceBackend, slot string, log *slog.Logger) *Store {
	return &Store{
		backend: backend,
		slot:    slot,
		log:     log.With("slot", slot),
		value:   domain.DefaultPreferences(),
	}
}

// Read returns the current record. Missing or corrupt data yields defaults; a
// backend fault yields the last good value and the load is retried next access.
func (s *Store) Read(ctx context.Context) domain.ReadingPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)
	return s.value.Clone()
}

// Write replaces the whole record
func (s *Store) Write(ctx context.Context, prefs domain.ReadingPreferences) domain.ReadingPreferences {
	return s.Update(ctx, func(domain.ReadingPreferences) domain.ReadingPreferences {
		return prefs
	})
}

// Update derives the next record from the latest in-memory value. Calls are
// serialised, so a sequence of updates folds without lost writes. A backend
// failure is logged and the in-memory value still advances. While the slot has
// not been loaded nothing is saved, so the stored record is never replaced by
// defaults; the update is replayed over it after the next successful load.
func (s *Store) Update(ctx context.Context, fn func(domain.ReadingPreferences) domain.ReadingPreferences) domain.ReadingPreferences {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loadLocked(ctx)
	next := fn(s.value.Clone())
	next.Normalize()
	s.value = next.Clone()
	if !s.loaded {
		s.pending = append(s.pending, fn)
		s.log.Warn("preferences not loaded, deferring persist", "pending", len(s.pending))
		return next
	}
	s.persistLocked(ctx)
	return next
}

func (s *Store) loadLocked(ctx context.Context) {
	if s.loaded {
		return
	}

	raw, err := s.backend.Load(ctx, s.slot)
	if err != nil && !errors.Is(err, domain.ErrSlotNotFound) {
		s.log.Warn("load preferences failed, keeping last good value", "error", err)
		return
	}
	s.loaded = true

	base := domain.DefaultPreferences()
	if err == nil {
		decoded := domain.DefaultPreferences()
		if err := json.Unmarshal(raw, &decoded); err != nil {
			s.log.Warn("discarding corrupt preferences", "error", err, "bytes", len(raw))
		} else {
			decoded.Normalize()
			base = decoded
		}
	}

	if len(s.pending) == 0 {
		s.value = base
		return
	}
	for _, fn := range s.pending {
		base = fn(base.Clone())
		base.Normalize()
	}
	s.log.Info("replayed deferred preference updates", "count", len(s.pending))
	s.pending = nil
	s.value = base
	s.persistLocked(ctx)
}

func (s *Store) persistLocked(ctx context.Context) {
	raw, err := json.Marshal(s.value)
	if err != nil {
		s.log.Error("encode preferences", "error", err)
		return
	}
	if err := s.backend.Save(ctx, s.slot, raw); err != nil {
		s.log.Warn("persist preferences failed, keeping in-memory state", "error", err)
	}
}

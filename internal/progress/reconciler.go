// Package progress turns the stream of centred ayahs into durable reading
// progress. Each surah view is a Session with an explicit state machine:
//
//	New -> Initializing -> Idle <-> Pending
//	any state -> Closed
//
// Initializing covers the one-shot auto-scroll to the resume position. Idle and
// Pending implement the debounced progress write.
package progress

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/id"
)

// State is the lifecycle state of a surah-view session
type State int

const (
	StateNew State = iota
	StateInitializing
	StateIdle
	StatePending
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInitializing:
		return "initializing"
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

const (
	DefaultDebounce        = time.Second
	DefaultAutoScrollDelay = 600 * time.Millisecond
)

// Config holds the session timer durations
type Config struct {
	Debounce        time.Duration
	AutoScrollDelay time.Duration
}

// Reconciler opens surah-view sessions over one user's preference store
type Reconciler struct {
	store domain.PreferenceStore
	clock clock.Clock
	cfg   Config
	log   *slog.Logger
}

func NewReconciler(store domain.PreferenceStore, clk clock.Clock, cfg Config, log *slog.Logger) *Reconciler {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.AutoScrollDelay <= 0 {
		cfg.AutoScrollDelay = DefaultAutoScrollDelay
	}
	return &Reconciler{store: store, clock: clk, cfg: cfg, log: log}
}

// Open creates a session for a surah with totalAyahs ayahs. scroll is invoked
// at most once, with the resume ayah, when the stored progress is past ayah 1.
func (r *Reconciler) Open(surahID, totalAyahs int, scroll func(ayah int)) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	sid := id.MustGenerate("view")
	return &Session{
		ID:     sid,
		r:      r,
		surah:  surahID,
		total:  max(totalAyahs, 1),
		scroll: scroll,
		ctx:    ctx,
		cancel: cancel,
		log:    r.log.With("session", sid, "surah", surahID),
	}
}

// Session is one surah view. All methods are safe for concurrent use.
type Session struct {
	ID string

	r      *Reconciler
	surah  int
	total  int
	scroll func(ayah int)
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger

	mu         sync.Mutex
	state      State
	committed  int
	pending    int
	generation uint64
	debounce   *clock.Timer
	autoScroll *clock.Timer
}

// Surah returns the surah number of the session
func (s *Session) Surah() int { return s.surah }

// Total returns the ayah count of the session's surah
func (s *Session) Total() int { return s.total }

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Committed returns the last ayah known to be durable for this surah
func (s *Session) Committed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// Mount records the surah as last read and schedules the resume scroll.
// Only the first call of a session does anything; it returns the resume ayah
// and whether this call mounted the session.
func (s *Session) Mount(ctx context.Context) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateNew {
		return s.committed, false
	}
	s.state = StateInitializing

	var resume int
	s.r.store.Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		resume = min(p.Progress(s.surah), s.total)
		surah, ayah := s.surah, resume
		p.LastReadSurah = &surah
		p.LastReadAyah = &ayah
		return p
	})
	s.committed = resume

	if resume > 1 && s.scroll != nil {
		s.log.Debug("scheduling resume scroll", "ayah", resume, "delay", s.r.cfg.AutoScrollDelay)
		s.autoScroll = s.r.clock.AfterFunc(s.r.cfg.AutoScrollDelay, func() {
			s.fireAutoScroll(resume)
		})
		return resume, true
	}

	s.state = StateIdle
	return resume, true
}

func (s *Session) fireAutoScroll(ayah int) {
	s.mu.Lock()
	if s.state != StateInitializing {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	// the callback may feed the tracker, which calls back into Visible
	s.scroll(ayah)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateInitializing {
		s.state = StateIdle
	}
}

// Visible reports the currently centred ayah. Signals outside Idle and Pending
// are ignored, as are signals that match the committed ayah with nothing pending.
func (s *Session) Visible(ayah int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle && s.state != StatePending {
		return
	}
	ayah = min(max(ayah, 1), s.total)

	if ayah == s.committed {
		if s.state == StatePending {
			s.stopDebounceLocked()
			s.state = StateIdle
		}
		return
	}

	s.stopDebounceLocked()
	s.pending = ayah
	s.generation++
	gen := s.generation
	s.debounce = s.r.clock.AfterFunc(s.r.cfg.Debounce, func() {
		s.commit(gen)
	})
	s.state = StatePending
}

func (s *Session) commit(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StatePending || gen != s.generation {
		return
	}
	ayah := s.pending
	s.r.store.Update(s.ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		v := ayah
		p.SurahProgress[s.surah] = v
		p.LastReadAyah = &v
		return p
	})
	s.committed = ayah
	s.pending = 0
	s.debounce = nil
	s.state = StateIdle
	s.log.Debug("progress committed", "ayah", ayah)
}

func (s *Session) stopDebounceLocked() {
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
}

// Close abandons any pending ayah and cancels both timers. Safe to call twice.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed {
		return
	}
	if s.state == StatePending {
		s.log.Debug("abandoning pending progress", "ayah", s.pending)
	}
	s.state = StateClosed
	s.stopDebounceLocked()
	if s.autoScroll != nil {
		s.autoScroll.Stop()
		s.autoScroll = nil
	}
	s.cancel()
}

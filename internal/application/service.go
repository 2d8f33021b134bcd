package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/go-playground/validator/v10"

	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/preferences"
	"github.com/escalopa/quran-reader/internal/progress"
	"github.com/escalopa/quran-reader/internal/ratelimit"
)

// DefaultIdleTimeout closes a view nobody interacted with for this long
const DefaultIdleTimeout = 15 * time.Minute

// Config tunes the reading core
type Config struct {
	Progress      progress.Config
	TimerFlush    time.Duration
	AyahsPerPage  int
	IdleTimeout   time.Duration
	FeedbackEvery time.Duration
	FeedbackBurst int
}

// Deps are the collaborators of the ReaderService
type Deps struct {
	Content  domain.ContentSource
	Prayer   domain.PrayerTimeSource
	Feedback domain.FeedbackChannel
	FSM      domain.FSMPort
	Registry *preferences.Registry
	Clock    clock.Clock
	Log      *slog.Logger
}

// ReaderService ties the reading core together for the chat and HTTP surfaces.
// Each user has at most one open surah view.
type ReaderService struct {
	content  domain.ContentSource
	feedback domain.FeedbackChannel
	fsm      domain.FSMPort
	registry *preferences.Registry
	clock    clock.Clock
	cfg      Config
	log      *slog.Logger

	prayer   *prayerTimes
	limiter  *ratelimit.KeyedRateLimiter
	validate *validator.Validate

	mu    sync.Mutex
	views map[string]*View
}

func NewReaderService(deps Deps, cfg Config) *ReaderService {
	if cfg.AyahsPerPage < 1 {
		cfg.AyahsPerPage = 5
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.FeedbackEvery <= 0 {
		cfg.FeedbackEvery = 30 * time.Second
	}
	if cfg.FeedbackBurst < 1 {
		cfg.FeedbackBurst = 2
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}
	return &ReaderService{
		content:  deps.Content,
		feedback: deps.Feedback,
		fsm:      deps.FSM,
		registry: deps.Registry,
		clock:    deps.Clock,
		cfg:      cfg,
		log:      deps.Log,
		prayer:   newPrayerTimes(deps.Prayer, deps.Clock, deps.Log),
		limiter:  ratelimit.New(cfg.FeedbackEvery, cfg.FeedbackBurst, time.Hour),
		validate: validator.New(),
		views:    make(map[string]*View),
	}
}

// Start runs the background jobs: the daily prayer cache reset and limiter pruning
func (s *ReaderService) Start() error {
	return s.prayer.start(func() {
		if n := s.limiter.Prune(s.clock.Now()); n > 0 {
			s.log.Debug("pruned idle feedback limiters", "count", n)
		}
	})
}

// Stop closes every open view, flushing reading time, and stops background jobs
func (s *ReaderService) Stop() {
	s.prayer.stop()

	s.mu.Lock()
	views := s.views
	s.views = make(map[string]*View)
	s.mu.Unlock()

	for _, v := range views {
		v.close()
	}
}

// AyahsPerPage returns the page size used by ScrollToPage
func (s *ReaderService) AyahsPerPage() int {
	return s.cfg.AyahsPerPage
}

// Preferences returns the user's current record
func (s *ReaderService) Preferences(ctx context.Context, userID string) domain.ReadingPreferences {
	return s.registry.For(userID).Read(ctx)
}

// ResumePoint returns the most recently opened surah and its last read ayah
func (s *ReaderService) ResumePoint(ctx context.Context, userID string) (domain.Surah, int, bool) {
	p := s.Preferences(ctx, userID)
	if p.LastReadSurah == nil {
		return domain.Surah{}, 0, false
	}
	surah, err := domain.GetSurah(*p.LastReadSurah)
	if err != nil {
		return domain.Surah{}, 0, false
	}
	ayah := 1
	if p.LastReadAyah != nil && *p.LastReadAyah >= 1 {
		ayah = min(*p.LastReadAyah, surah.Ayahs)
	}
	return surah, ayah, true
}

// DialogState returns the chat dialog state of the user
func (s *ReaderService) DialogState(ctx context.Context, userID string) domain.State {
	state, err := s.fsm.GetState(ctx, userID)
	if err != nil {
		s.log.Warn("get dialog state", "user_id", userID, "error", err)
		return domain.StateBrowsing
	}
	return state
}

// SetDialogState moves the chat dialog to state; StateBrowsing clears it
func (s *ReaderService) SetDialogState(ctx context.Context, userID string, state domain.State) error {
	if state == domain.StateBrowsing {
		if err := s.fsm.DeleteState(ctx, userID); err != nil {
			return fmt.Errorf("delete state: %w", err)
		}
		return nil
	}
	if err := s.fsm.SetState(ctx, userID, state); err != nil {
		return fmt.Errorf("set state: %w", err)
	}
	return nil
}

func invalidSetting(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidSetting, fmt.Sprintf(format, args...))
}

// IsUserError reports whether err is caused by user input rather than a fault
func IsUserError(err error) bool {
	return errors.Is(err, domain.ErrInvalidSurah) ||
		errors.Is(err, domain.ErrInvalidAyah) ||
		errors.Is(err, domain.ErrInvalidPage) ||
		errors.Is(err, domain.ErrInvalidSetting) ||
		errors.Is(err, domain.ErrRateLimited)
}

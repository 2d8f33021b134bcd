package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/benbjohnson/clock"

	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/progress"
	"github.com/escalopa/quran-reader/internal/visibility"
)

// View is an open surah: its content, layout and the session tracking it
type View struct {
	Surah         domain.Surah
	Ayahs         []domain.Ayah
	ResumeAyah    int
	ObservationID string

	session *progress.Session
	tracker *visibility.Tracker
	units   []visibility.Unit
	timer   *progress.ReadingTimer
	perPage int

	mu   sync.Mutex
	page int
	idle *clock.Timer
}

// SessionID identifies the surah-view session
func (v *View) SessionID() string { return v.session.ID }

// State returns the session state
func (v *View) State() progress.State { return v.session.State() }

// Page returns the page currently shown
func (v *View) Page() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.page
}

// Pages returns the number of pages of the surah
func (v *View) Pages() int {
	return visibility.PageCount(len(v.Ayahs), v.perPage)
}

// PageAyahs returns the ayahs shown on a page
func (v *View) PageAyahs(page int) []domain.Ayah {
	if page < 1 || page > v.Pages() {
		return nil
	}
	first := (page - 1) * v.perPage
	last := min(first+v.perPage, len(v.Ayahs))
	return v.Ayahs[first:last]
}

// PageOf returns the page containing the ayah
func (v *View) PageOf(ayah int) int {
	return visibility.PageOf(ayah, v.perPage)
}

// Current returns the ayah the tracker last reported as centred, 0 if none
func (v *View) Current() int {
	return v.tracker.Current()
}

func (v *View) show(page int) bool {
	vp, ok := visibility.PageViewport(v.units, page, v.perPage)
	if !ok {
		return false
	}
	v.mu.Lock()
	v.page = page
	v.mu.Unlock()
	v.tracker.Scroll(vp)
	return true
}

// touch postpones the idle expiry
func (v *View) touch(timeout time.Duration) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.idle != nil {
		v.idle.Reset(timeout)
	}
}

func (v *View) close() {
	v.mu.Lock()
	if v.idle != nil {
		v.idle.Stop()
	}
	v.mu.Unlock()

	v.session.Close()
	if o := v.tracker.Active(); o != nil {
		o.Dispose()
	}
	v.timer.Stop()
}

// ScrollFunc is called when the view jumps to the resume ayah
type ScrollFunc func(ayah, page int)

// OpenSurah tears down the user's previous view, fetches the surah and starts
// a new session. A fetch failure is returned wrapping domain.ErrContentUnavailable
// and leaves no view open. onScroll may be nil.
func (s *ReaderService) OpenSurah(ctx context.Context, userID string, surahNumber int, onScroll ScrollFunc) (*View, error) {
	surah, err := domain.GetSurah(surahNumber)
	if err != nil {
		return nil, err
	}
	s.CloseView(userID)

	ayahs, err := s.content.FetchSurah(ctx, surahNumber)
	if err != nil {
		if !errors.Is(err, domain.ErrContentUnavailable) {
			err = fmt.Errorf("%w: %w", domain.ErrContentUnavailable, err)
		}
		s.log.Warn("fetch surah failed", "user_id", userID, "surah", surahNumber, "error", err)
		return nil, err
	}

	store := s.registry.For(userID)
	prefs := store.Read(ctx)
	log := s.log.With("user_id", userID)

	v := &View{
		Surah:   surah,
		Ayahs:   ayahs,
		units:   visibility.Layout(blocks(ayahs, prefs)),
		perPage: s.cfg.AyahsPerPage,
		timer:   progress.NewReadingTimer(store, s.clock, s.cfg.TimerFlush, log),
		page:    1,
	}

	reconciler := progress.NewReconciler(store, s.clock, s.cfg.Progress, log)
	v.session = reconciler.Open(surahNumber, len(ayahs), func(ayah int) {
		page := v.PageOf(ayah)
		v.show(page)
		if onScroll != nil {
			onScroll(ayah, page)
		}
	})
	v.tracker = visibility.NewTracker(v.session.Visible, log)
	v.ObservationID = v.tracker.Observe(v.units).ID
	// the first page is on screen until the resume scroll moves it; the
	// session ignores it until mounted
	v.show(1)

	s.mu.Lock()
	prev, raced := s.views[userID]
	s.views[userID] = v
	s.mu.Unlock()
	if raced {
		prev.close()
	}

	v.ResumeAyah, _ = v.session.Mount(ctx)
	v.timer.Start(ctx)
	v.mu.Lock()
	v.idle = s.clock.AfterFunc(s.cfg.IdleTimeout, func() { s.expire(userID, v) })
	v.mu.Unlock()
	log.Info("surah opened", "surah", surahNumber, "resume", v.ResumeAyah, "session", v.session.ID)
	return v, nil
}

// View returns the user's open view
func (s *ReaderService) View(userID string) (*View, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.views[userID]
	if !ok {
		return nil, domain.ErrNoActiveView
	}
	return v, nil
}

// ScrollToPage shows a page of the open surah and feeds it to the tracker as the viewport
func (s *ReaderService) ScrollToPage(_ context.Context, userID string, page int) (*View, error) {
	v, err := s.View(userID)
	if err != nil {
		return nil, err
	}
	if !v.show(page) {
		return nil, fmt.Errorf("%w: %d of %d", domain.ErrInvalidPage, page, v.Pages())
	}
	v.touch(s.cfg.IdleTimeout)
	return v, nil
}

// DeliverVisibility applies a batch from a client-side observer. Batches for a
// replaced list are dropped; the result reports whether the batch was applied.
func (s *ReaderService) DeliverVisibility(_ context.Context, userID, observationID string, entries []visibility.Entry) (bool, error) {
	v, err := s.View(userID)
	if err != nil {
		return false, err
	}
	v.touch(s.cfg.IdleTimeout)
	return v.tracker.Deliver(observationID, entries), nil
}

// touchView postpones the idle expiry of the user's view, if one is open
func (s *ReaderService) touchView(userID string) {
	if v, err := s.View(userID); err == nil {
		v.touch(s.cfg.IdleTimeout)
	}
}

// expire closes a view left idle and drops the user's cached preference handle.
// A view already replaced or closed is left alone.
func (s *ReaderService) expire(userID string, v *View) {
	s.mu.Lock()
	current, ok := s.views[userID]
	if !ok || current != v {
		s.mu.Unlock()
		return
	}
	delete(s.views, userID)
	s.mu.Unlock()

	v.close()
	s.registry.Forget(userID)
	s.log.Info("idle view closed", "user_id", userID, "surah", v.Surah.Number, "session", v.session.ID)
}

// CloseView ends the user's session: pending progress is abandoned and reading time flushed
func (s *ReaderService) CloseView(userID string) {
	s.mu.Lock()
	v, ok := s.views[userID]
	delete(s.views, userID)
	s.mu.Unlock()

	if ok {
		v.close()
	}
}

// blocks estimates rendered heights from text length and the user's font settings
func blocks(ayahs []domain.Ayah, p domain.ReadingPreferences) []visibility.Block {
	out := make([]visibility.Block, 0, len(ayahs))
	for _, a := range ayahs {
		h := textHeight(a.Text, p.FontSize.Arabic, 1.8)
		if p.ShowLatin {
			h += textHeight(a.Transliteration, p.FontSize.Latin, 1.5)
		}
		if p.ShowTranslation {
			h += textHeight(a.Translation, p.FontSize.Translation, 1.5)
		}
		out = append(out, visibility.Block{ID: a.AyahNumber, Height: h})
	}
	return out
}

const lineWidth = 640.0

func textHeight(text string, font int, lineHeight float64) float64 {
	if font <= 0 {
		return 0
	}
	chars := float64(utf8.RuneCountInString(text))
	perLine := lineWidth / (float64(font) * 0.55)
	lines := max(1, int(chars/perLine)+1)
	return float64(lines) * float64(font) * lineHeight
}

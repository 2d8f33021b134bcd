package progress

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/logger"
	"github.com/escalopa/quran-reader/internal/preferences"
)

const (
	waitFor = time.Second
	tick    = 5 * time.Millisecond
)

// recordingStore counts every Update and keeps the resulting records
type recordingStore struct {
	*preferences.Store

	mu      sync.Mutex
	history []domain.ReadingPreferences
}

func (r *recordingStore) Update(ctx context.Context, fn func(domain.ReadingPreferences) domain.ReadingPreferences) domain.ReadingPreferences {
	out := r.Store.Update(ctx, fn)
	r.mu.Lock()
	r.history = append(r.history, out.Clone())
	r.mu.Unlock()
	return out
}

func (r *recordingStore) writes() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}

func (r *recordingStore) progressHistory(surah int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []int
	for _, p := range r.history {
		if v, ok := p.SurahProgress[surah]; ok {
			out = append(out, v)
		}
	}
	return out
}

type scrollRecorder struct {
	mu    sync.Mutex
	calls []int
}

func (s *scrollRecorder) scroll(ayah int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, ayah)
}

func (s *scrollRecorder) got() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.calls...)
}

type fixture struct {
	clock  *clock.Mock
	store  *recordingStore
	rec    *Reconciler
	scroll *scrollRecorder
}

func newFixture(t *testing.T, seed func(p domain.ReadingPreferences) domain.ReadingPreferences) *fixture {
	t.Helper()
	store := &recordingStore{
		Store: preferences.NewStore(preferences.NewMemoryBackend(), "quran-preferences:test", logger.Discard()),
	}
	if seed != nil {
		store.Store.Update(context.Background(), seed)
	}
	clk := clock.NewMock()
	return &fixture{
		clock:  clk,
		store:  store,
		rec:    NewReconciler(store, clk, Config{Debounce: time.Second, AutoScrollDelay: 600 * time.Millisecond}, logger.Discard()),
		scroll: &scrollRecorder{},
	}
}

func withProgress(surah, ayah int) func(domain.ReadingPreferences) domain.ReadingPreferences {
	return func(p domain.ReadingPreferences) domain.ReadingPreferences {
		p.SurahProgress[surah] = ayah
		return p
	}
}

func (f *fixture) prefs() domain.ReadingPreferences {
	return f.store.Read(context.Background())
}

func TestMount_RecordsLastReadSurah(t *testing.T) {
	f := newFixture(t, nil)
	s := f.rec.Open(18, 110, f.scroll.scroll)

	resume, mounted := s.Mount(context.Background())
	assert.True(t, mounted)
	assert.Equal(t, 1, resume)
	assert.Equal(t, StateIdle, s.State())

	p := f.prefs()
	require.NotNil(t, p.LastReadSurah)
	require.NotNil(t, p.LastReadAyah)
	assert.Equal(t, 18, *p.LastReadSurah)
	assert.Equal(t, 1, *p.LastReadAyah)
	assert.Empty(t, p.SurahProgress, "mount must not write ayah progress")
}

func TestDebounce_OnlyLastIdentifierPersisted(t *testing.T) {
	f := newFixture(t, nil)
	s := f.rec.Open(2, 286, f.scroll.scroll)
	s.Mount(context.Background())

	s.Visible(3)
	f.clock.Add(300 * time.Millisecond)
	s.Visible(4)
	f.clock.Add(300 * time.Millisecond)
	s.Visible(5)
	f.clock.Add(999 * time.Millisecond)
	assert.Equal(t, StatePending, s.State())
	assert.Empty(t, f.store.progressHistory(2))

	f.clock.Add(time.Millisecond)
	assert.Eventually(t, func() bool { return s.State() == StateIdle }, waitFor, tick)

	assert.Equal(t, []int{5}, f.store.progressHistory(2))
	p := f.prefs()
	assert.Equal(t, 5, p.SurahProgress[2])
	assert.Equal(t, 5, *p.LastReadAyah)
}

func TestDebounce_SameAyahAgainIsNoop(t *testing.T) {
	f := newFixture(t, nil)
	s := f.rec.Open(36, 83, f.scroll.scroll)
	s.Mount(context.Background())

	s.Visible(5)
	f.clock.Add(time.Second)
	assert.Eventually(t, func() bool { return s.Committed() == 5 }, waitFor, tick)
	writes := f.store.writes()

	s.Visible(5)
	assert.Equal(t, StateIdle, s.State())
	f.clock.Add(2 * time.Second)
	assert.Equal(t, writes, f.store.writes())
	assert.Equal(t, 5, f.prefs().SurahProgress[36])
}

func TestDebounce_ReturnToCommittedCancelsPending(t *testing.T) {
	f := newFixture(t, nil)
	s := f.rec.Open(36, 83, f.scroll.scroll)
	s.Mount(context.Background())
	writes := f.store.writes()

	s.Visible(4)
	s.Visible(1)
	assert.Equal(t, StateIdle, s.State())
	f.clock.Add(2 * time.Second)
	assert.Equal(t, writes, f.store.writes())
}

func TestVisible_ClampsToSurah(t *testing.T) {
	f := newFixture(t, nil)
	s := f.rec.Open(112, 4, f.scroll.scroll)
	s.Mount(context.Background())

	s.Visible(40)
	f.clock.Add(time.Second)
	assert.Eventually(t, func() bool { return s.Committed() == 4 }, waitFor, tick)
	assert.Equal(t, 4, f.prefs().SurahProgress[112])

	s.Visible(-3)
	f.clock.Add(time.Second)
	assert.Eventually(t, func() bool { return s.Committed() == 1 }, waitFor, tick)
}

func TestVisible_IgnoredBeforeMount(t *testing.T) {
	f := newFixture(t, nil)
	s := f.rec.Open(36, 83, f.scroll.scroll)

	s.Visible(9)
	f.clock.Add(2 * time.Second)
	assert.Equal(t, StateNew, s.State())
	assert.Zero(t, f.store.writes())
}

func TestAutoScroll_FiresOncePerSession(t *testing.T) {
	f := newFixture(t, withProgress(36, 12))
	ctx := context.Background()

	first := f.rec.Open(36, 83, f.scroll.scroll)
	resume, mounted := first.Mount(ctx)
	require.True(t, mounted)
	assert.Equal(t, 12, resume)
	assert.Equal(t, StateInitializing, first.State())
	assert.Equal(t, 12, *f.prefs().LastReadAyah)

	f.clock.Add(599 * time.Millisecond)
	assert.Empty(t, f.scroll.got())
	f.clock.Add(time.Millisecond)
	assert.Eventually(t, func() bool { return first.State() == StateIdle }, waitFor, tick)
	assert.Equal(t, []int{12}, f.scroll.got())

	// remount inside the same session
	_, mounted = first.Mount(ctx)
	assert.False(t, mounted)
	f.clock.Add(time.Second)
	assert.Equal(t, []int{12}, f.scroll.got())

	first.Close()
	second := f.rec.Open(36, 83, f.scroll.scroll)
	_, mounted = second.Mount(ctx)
	require.True(t, mounted)
	f.clock.Add(600 * time.Millisecond)
	assert.Eventually(t, func() bool { return len(f.scroll.got()) == 2 }, waitFor, tick)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestAutoScroll_NotForFirstAyah(t *testing.T) {
	tests := []struct {
		name  string
		seed  func(domain.ReadingPreferences) domain.ReadingPreferences
		total int
	}{
		{"never visited", nil, 7},
		{"stored at ayah 1", withProgress(1, 1), 7},
		{"single ayah surah", withProgress(1, 5), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.seed)
			s := f.rec.Open(1, tt.total, f.scroll.scroll)
			resume, _ := s.Mount(context.Background())

			assert.Equal(t, 1, resume)
			assert.Equal(t, StateIdle, s.State())
			f.clock.Add(time.Second)
			assert.Empty(t, f.scroll.got())
		})
	}
}

func TestVisible_IgnoredWhileInitializing(t *testing.T) {
	f := newFixture(t, withProgress(36, 12))
	s := f.rec.Open(36, 83, f.scroll.scroll)
	s.Mount(context.Background())
	writes := f.store.writes()

	s.Visible(20)
	f.clock.Add(600 * time.Millisecond)
	assert.Eventually(t, func() bool { return s.State() == StateIdle }, waitFor, tick)
	f.clock.Add(2 * time.Second)

	assert.Equal(t, writes, f.store.writes())
	assert.Equal(t, 12, f.prefs().SurahProgress[36])
}

func TestClose_AbandonsPendingAndCancelsTimers(t *testing.T) {
	f := newFixture(t, withProgress(36, 12))
	s := f.rec.Open(36, 83, f.scroll.scroll)
	s.Mount(context.Background())
	s.Close()
	s.Close()

	f.clock.Add(time.Second)
	assert.Empty(t, f.scroll.got(), "auto-scroll of a closed session must not fire")
	assert.Equal(t, StateClosed, s.State())

	other := f.rec.Open(2, 286, f.scroll.scroll)
	other.Mount(context.Background())
	other.Visible(40)
	other.Close()
	f.clock.Add(2 * time.Second)

	assert.Empty(t, f.store.progressHistory(2))
	other.Visible(50)
	assert.Equal(t, StateClosed, other.State())
}

func TestProgressAndFavoriteWritesDoNotClobber(t *testing.T) {
	f := newFixture(t, nil)
	s := f.rec.Open(36, 83, f.scroll.scroll)
	s.Mount(context.Background())

	s.Visible(10)
	f.store.Update(context.Background(), func(p domain.ReadingPreferences) domain.ReadingPreferences {
		p.FavoriteSurahs = append(p.FavoriteSurahs, 36)
		return p
	})
	f.clock.Add(time.Second)
	assert.Eventually(t, func() bool { return s.Committed() == 10 }, waitFor, tick)

	p := f.prefs()
	assert.Equal(t, []int{36}, p.FavoriteSurahs)
	assert.Equal(t, 10, p.SurahProgress[36])
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", StatePending.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestMount_ZeroScrollDelayUsesDefault(t *testing.T) {
	f := newFixture(t, withProgress(18, 42))
	f.rec = NewReconciler(f.store, f.clock, Config{Debounce: time.Second}, logger.Discard())
	s := f.rec.Open(18, 110, f.scroll.scroll)

	resume, _ := s.Mount(context.Background())
	assert.Equal(t, 42, resume)

	f.clock.Add(DefaultAutoScrollDelay - time.Millisecond)
	assert.Equal(t, StateInitializing, s.State())
	assert.Empty(t, f.scroll.got())

	f.clock.Add(time.Millisecond)
	assert.Eventually(t, func() bool { return s.State() == StateIdle }, waitFor, tick)
	assert.Equal(t, []int{42}, f.scroll.got())
}

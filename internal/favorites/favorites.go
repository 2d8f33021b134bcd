// Package favorites toggles favourite surahs and bookmarked ayahs. Every toggle
// is a single read-modify-write on the preference store.
package favorites

import (
	"context"
	"fmt"
	"slices"

	"github.com/benbjohnson/clock"

	"github.com/escalopa/quran-reader/internal/domain"
)

// Snapshot is the ayah content kept with a bookmark
type Snapshot struct {
	SurahName string
	Text      string
}

type Manager struct {
	store domain.PreferenceStore
	clock clock.Clock
}

func NewManager(store domain.PreferenceStore, clk clock.Clock) *Manager {
	return &Manager{store: store, clock: clk}
}

// ToggleSurah removes the surah if present, else appends it. Returns the new membership.
func (m *Manager) ToggleSurah(ctx context.Context, surahID int) (bool, error) {
	if _, err := domain.GetSurah(surahID); err != nil {
		return false, fmt.Errorf("toggle surah %d: %w", surahID, err)
	}

	var member bool
	m.store.Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		if i := slices.Index(p.FavoriteSurahs, surahID); i >= 0 {
			p.FavoriteSurahs = slices.Delete(p.FavoriteSurahs, i, i+1)
			member = false
			return p
		}
		p.FavoriteSurahs = append(p.FavoriteSurahs, surahID)
		member = true
		return p
	})
	return member, nil
}

// ToggleAyah removes the bookmark for the compound key if present, else appends
// a new one stamped with the current time. Returns the new membership.
func (m *Manager) ToggleAyah(ctx context.Context, surahID, ayahNumber int, snap Snapshot) (bool, error) {
	surah, err := domain.GetSurah(surahID)
	if err != nil {
		return false, fmt.Errorf("toggle ayah %d:%d: %w", surahID, ayahNumber, err)
	}
	if ayahNumber < 1 || ayahNumber > surah.Ayahs {
		return false, fmt.Errorf("toggle ayah %d:%d: %w", surahID, ayahNumber, domain.ErrInvalidAyah)
	}
	if snap.SurahName == "" {
		snap.SurahName = surah.Name
	}

	now := m.clock.Now().UnixMilli()
	var member bool
	m.store.Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		if i := p.BookmarkIndex(surahID, ayahNumber); i >= 0 {
			p.BookmarkedAyahs = slices.Delete(p.BookmarkedAyahs, i, i+1)
			member = false
			return p
		}
		p.BookmarkedAyahs = append(p.BookmarkedAyahs, domain.BookmarkedAyah{
			SurahID:    surahID,
			AyahNumber: ayahNumber,
			SurahName:  snap.SurahName,
			Text:       snap.Text,
			Timestamp:  now,
		})
		member = true
		return p
	})
	return member, nil
}

func (m *Manager) IsFavoriteSurah(ctx context.Context, surahID int) bool {
	return m.store.Read(ctx).IsFavoriteSurah(surahID)
}

func (m *Manager) IsBookmarked(ctx context.Context, surahID, ayahNumber int) bool {
	return m.store.Read(ctx).BookmarkIndex(surahID, ayahNumber) >= 0
}

// Surahs returns the favourite surahs in insertion order
func (m *Manager) Surahs(ctx context.Context) []domain.Surah {
	ids := m.store.Read(ctx).FavoriteSurahs
	out := make([]domain.Surah, 0, len(ids))
	for _, n := range ids {
		if s, err := domain.GetSurah(n); err == nil {
			out = append(out, s)
		}
	}
	return out
}

// Ayahs returns the bookmarks, most recent last
func (m *Manager) Ayahs(ctx context.Context) []domain.BookmarkedAyah {
	return m.store.Read(ctx).BookmarkedAyahs
}

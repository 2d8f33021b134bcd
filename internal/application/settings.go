package application

import (
	"context"

	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/favorites"
)

func (s *ReaderService) favorites(userID string) *favorites.Manager {
	return favorites.NewManager(s.registry.For(userID), s.clock)
}

// ToggleFavoriteSurah flips the surah's favourite membership
func (s *ReaderService) ToggleFavoriteSurah(ctx context.Context, userID string, surahNumber int) (bool, error) {
	s.touchView(userID)
	return s.favorites(userID).ToggleSurah(ctx, surahNumber)
}

// ToggleBookmark flips the bookmark of an ayah. The text snapshot comes from
// the open view when it shows the same surah.
func (s *ReaderService) ToggleBookmark(ctx context.Context, userID string, surahNumber, ayahNumber int) (bool, error) {
	var snap favorites.Snapshot
	if v, err := s.View(userID); err == nil && v.Surah.Number == surahNumber {
		v.touch(s.cfg.IdleTimeout)
		for _, a := range v.Ayahs {
			if a.AyahNumber == ayahNumber {
				snap.Text = a.Text
				break
			}
		}
	}
	return s.favorites(userID).ToggleAyah(ctx, surahNumber, ayahNumber, snap)
}

// FavoriteSurahs returns the user's favourite surahs in insertion order
func (s *ReaderService) FavoriteSurahs(ctx context.Context, userID string) []domain.Surah {
	return s.favorites(userID).Surahs(ctx)
}

// Bookmarks returns the user's bookmarked ayahs, most recent last
func (s *ReaderService) Bookmarks(ctx context.Context, userID string) []domain.BookmarkedAyah {
	return s.favorites(userID).Ayahs(ctx)
}

// AdjustFontSize moves a font size by steps of its kind, clamped to its bounds
func (s *ReaderService) AdjustFontSize(ctx context.Context, userID string, kind domain.FontKind, steps int) (int, error) {
	bounds, ok := kind.Bounds()
	if !ok {
		return 0, invalidSetting("font kind %q", kind)
	}

	var size int
	s.registry.For(userID).Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		size = bounds.Clamp(p.Font(kind) + steps*bounds.Step)
		p.SetFont(kind, size)
		return p
	})
	return size, nil
}

// ToggleDisplay flips a boolean display setting and returns its new value
func (s *ReaderService) ToggleDisplay(ctx context.Context, userID string, setting domain.DisplaySetting) (bool, error) {
	if _, ok := domain.DefaultPreferences().Display(setting); !ok {
		return false, invalidSetting("display setting %q", setting)
	}

	var value bool
	s.registry.For(userID).Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		current, _ := p.Display(setting)
		value = !current
		p.SetDisplay(setting, value)
		return p
	})
	return value, nil
}

// SetLanguage stores the interface language
func (s *ReaderService) SetLanguage(ctx context.Context, userID string, lang domain.Language) error {
	if !lang.Valid() {
		return invalidSetting("language %q", lang)
	}
	s.registry.For(userID).Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		p.Language = lang
		return p
	})
	return nil
}

// SetLocation stores the location used for prayer times
func (s *ReaderService) SetLocation(ctx context.Context, userID string, loc domain.Location) error {
	if err := s.validate.Struct(loc); err != nil {
		return invalidSetting("location: %v", err)
	}
	s.registry.For(userID).Update(ctx, func(p domain.ReadingPreferences) domain.ReadingPreferences {
		l := loc
		p.Location = &l
		return p
	})
	return nil
}

package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()
	assert.Nil(t, p.LastReadSurah)
	assert.Nil(t, p.LastReadAyah)
	assert.Equal(t, []int{}, p.FavoriteSurahs)
	assert.Empty(t, p.BookmarkedAyahs)
	assert.Empty(t, p.SurahProgress)
	assert.Equal(t, FontSize{Arabic: 28, Latin: 14, Translation: 16}, p.FontSize)
	assert.False(t, p.DarkMode)
	assert.True(t, p.ShowLatin)
	assert.Equal(t, LangIndonesian, p.Language)

	raw, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"favoriteSurahs":[]`)
	assert.Contains(t, string(raw), `"lastReadSurah":null`)
}

func TestPreferencesClone(t *testing.T) {
	surah, ayah := 2, 5
	p := DefaultPreferences()
	p.LastReadSurah = &surah
	p.LastReadAyah = &ayah
	p.FavoriteSurahs = []int{36}
	p.SurahProgress[2] = 5
	p.Location = &Location{City: "Solo"}

	c := p.Clone()
	*c.LastReadSurah = 3
	c.FavoriteSurahs[0] = 18
	c.SurahProgress[2] = 9
	c.Location.City = "Yogyakarta"

	assert.Equal(t, 2, *p.LastReadSurah)
	assert.Equal(t, []int{36}, p.FavoriteSurahs)
	assert.Equal(t, 5, p.SurahProgress[2])
	assert.Equal(t, "Solo", p.Location.City)
}

func TestPreferencesNormalize(t *testing.T) {
	p := ReadingPreferences{
		FavoriteSurahs: []int{36, 18, 36},
		BookmarkedAyahs: []BookmarkedAyah{
			{SurahID: 2, AyahNumber: 255, Text: "first"},
			{SurahID: 2, AyahNumber: 255, Text: "second"},
			{SurahID: 2, AyahNumber: 256},
		},
		ReadingDuration: -4,
		Language:        "xx",
	}
	p.Normalize()

	assert.Equal(t, []int{36, 18}, p.FavoriteSurahs)
	require.Len(t, p.BookmarkedAyahs, 2)
	assert.Equal(t, "first", p.BookmarkedAyahs[0].Text)
	assert.NotNil(t, p.SurahProgress)
	assert.Zero(t, p.ReadingDuration)
	assert.Equal(t, LangIndonesian, p.Language)
}

func TestPreferencesDecodeKeepsDefaults(t *testing.T) {
	p := DefaultPreferences()
	require.NoError(t, json.Unmarshal([]byte(`{"darkMode":true,"surahProgress":{"36":12}}`), &p))
	p.Normalize()

	assert.True(t, p.DarkMode)
	assert.True(t, p.ShowTranslation)
	assert.Equal(t, 28, p.FontSize.Arabic)
	assert.Equal(t, 12, p.Progress(36))
	assert.Equal(t, 1, p.Progress(1))
}

func TestPreferencesSettings(t *testing.T) {
	p := DefaultPreferences()

	assert.True(t, p.SetDisplay(SettingDarkMode, true))
	v, ok := p.Display(SettingDarkMode)
	assert.True(t, ok)
	assert.True(t, v)
	assert.False(t, p.SetDisplay("bogus", true))

	p.SetFont(FontLatin, 18)
	assert.Equal(t, 18, p.Font(FontLatin))

	b, ok := FontArabic.Bounds()
	require.True(t, ok)
	assert.Equal(t, 48, b.Clamp(60))
	assert.Equal(t, 20, b.Clamp(2))
	_, ok = FontKind("huge").Bounds()
	assert.False(t, ok)
}

func TestBookmarkIndex(t *testing.T) {
	p := DefaultPreferences()
	p.BookmarkedAyahs = []BookmarkedAyah{{SurahID: 1, AyahNumber: 1}, {SurahID: 36, AyahNumber: 58}}
	assert.Equal(t, 1, p.BookmarkIndex(36, 58))
	assert.Equal(t, -1, p.BookmarkIndex(58, 36))
	assert.False(t, p.IsFavoriteSurah(36))
}

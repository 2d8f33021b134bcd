package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog(t *testing.T) {
	all := GetAllSurahs()
	require.Len(t, all, SurahCount)

	total := 0
	for i, s := range all {
		assert.Equal(t, i+1, s.Number)
		assert.Positive(t, s.Ayahs)
		total += s.Ayahs
	}
	assert.Equal(t, 6236, total)

	all[0].Name = "changed"
	first, err := GetSurah(1)
	require.NoError(t, err)
	assert.Equal(t, "Al-Fatihah", first.Name)
}

func TestGetSurahInvalid(t *testing.T) {
	for _, n := range []int{0, -1, 115} {
		_, err := GetSurah(n)
		assert.ErrorIs(t, err, ErrInvalidSurah)
	}
}

func TestFeaturedSurahs(t *testing.T) {
	featured := FeaturedSurahs()
	require.Len(t, featured, len(FeaturedSurahNumbers))
	assert.Equal(t, "Yasin", featured[0].Name)
}

func TestAyahID(t *testing.T) {
	assert.Equal(t, "036005", FormatAyahID(36, 5))
	assert.Equal(t, "002286", Ayah{SurahNumber: 2, AyahNumber: 286}.AyahID())

	s, a, err := ParseAyahID("112004")
	require.NoError(t, err)
	assert.Equal(t, 112, s)
	assert.Equal(t, 4, a)

	_, _, err = ParseAyahID("12")
	assert.Error(t, err)
	_, _, err = ParseAyahID("abc001")
	assert.Error(t, err)
}

func TestNextPrayer(t *testing.T) {
	schedule := PrayerSchedule{Times: FallbackPrayerTimes()}
	at := func(hhmm string) time.Time {
		ts, err := time.Parse("15:04", hhmm)
		require.NoError(t, err)
		return ts
	}

	tests := []struct {
		now  string
		want string
	}{
		{"03:00", "Subuh"},
		{"04:30", "Terbit"},
		{"12:01", "Ashar"},
		{"19:00", "Isya"},
		{"23:59", "Subuh"},
	}
	for _, tt := range tests {
		t.Run(tt.now, func(t *testing.T) {
			next, ok := schedule.NextPrayer(at(tt.now))
			require.True(t, ok)
			assert.Equal(t, tt.want, next.Name)
		})
	}

	_, ok := PrayerSchedule{}.NextPrayer(time.Now())
	assert.False(t, ok)
}

func TestLanguageValid(t *testing.T) {
	for _, l := range Languages() {
		assert.True(t, l.Valid())
	}
	assert.False(t, Language("fr").Valid())
}

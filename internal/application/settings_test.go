package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escalopa/quran-reader/internal/domain"
)

func TestAdjustFontSize(t *testing.T) {
	tests := []struct {
		name  string
		kind  domain.FontKind
		steps []int
		want  int
	}{
		{name: "arabic up", kind: domain.FontArabic, steps: []int{1}, want: 30},
		{name: "arabic clamps at max", kind: domain.FontArabic, steps: []int{20}, want: 48},
		{name: "latin down", kind: domain.FontLatin, steps: []int{-1, -1}, want: 12},
		{name: "translation clamps at min", kind: domain.FontTranslation, steps: []int{-10}, want: 12},
		{name: "round trip", kind: domain.FontTranslation, steps: []int{2, -2}, want: 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			ctx := context.Background()

			var got int
			for _, s := range tt.steps {
				var err error
				got, err = f.svc.AdjustFontSize(ctx, "u1", tt.kind, s)
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, f.svc.Preferences(ctx, "u1").Font(tt.kind))
		})
	}
}

func TestAdjustFontSize_UnknownKind(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.AdjustFontSize(context.Background(), "u1", "huge", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidSetting)
}

func TestToggleDisplay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	on, err := f.svc.ToggleDisplay(ctx, "u1", domain.SettingDarkMode)
	require.NoError(t, err)
	assert.True(t, on)
	assert.True(t, f.svc.Preferences(ctx, "u1").DarkMode)

	on, err = f.svc.ToggleDisplay(ctx, "u1", domain.SettingShowTajwid)
	require.NoError(t, err)
	assert.False(t, on)

	_, err = f.svc.ToggleDisplay(ctx, "u1", "sepia")
	assert.ErrorIs(t, err, domain.ErrInvalidSetting)
}

func TestSetLanguage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.SetLanguage(ctx, "u1", domain.LangJavanese))
	assert.Equal(t, domain.LangJavanese, f.svc.Preferences(ctx, "u1").Language)

	assert.ErrorIs(t, f.svc.SetLanguage(ctx, "u1", "fr"), domain.ErrInvalidSetting)
	assert.Equal(t, domain.LangJavanese, f.svc.Preferences(ctx, "u1").Language)
}

func TestSetLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	loc := domain.Location{City: "Yogyakarta", Latitude: -7.7956, Longitude: 110.3695}
	require.NoError(t, f.svc.SetLocation(ctx, "u1", loc))
	assert.Equal(t, &loc, f.svc.Preferences(ctx, "u1").Location)

	err := f.svc.SetLocation(ctx, "u1", domain.Location{Latitude: 91})
	assert.ErrorIs(t, err, domain.ErrInvalidSetting)
}

func TestToggleBookmark_SnapshotsOpenView(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenSurah(ctx, "u1", 2, nil)
	require.NoError(t, err)

	on, err := f.svc.ToggleBookmark(ctx, "u1", 2, 255)
	require.NoError(t, err)
	assert.True(t, on)

	// without an open view of surah 36 the text snapshot stays empty
	_, err = f.svc.ToggleBookmark(ctx, "u1", 36, 1)
	require.NoError(t, err)

	marks := f.svc.Bookmarks(ctx, "u1")
	require.Len(t, marks, 2)
	assert.Equal(t, "text 2:255", marks[0].Text)
	assert.Equal(t, "Al-Baqarah", marks[0].SurahName)
	assert.Empty(t, marks[1].Text)

	on, err = f.svc.ToggleBookmark(ctx, "u1", 2, 255)
	require.NoError(t, err)
	assert.False(t, on)
	assert.Len(t, f.svc.Bookmarks(ctx, "u1"), 1)
}

func TestToggleFavoriteSurah(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, n := range []int{18, 36, 67} {
		on, err := f.svc.ToggleFavoriteSurah(ctx, "u1", n)
		require.NoError(t, err)
		assert.True(t, on)
	}
	on, err := f.svc.ToggleFavoriteSurah(ctx, "u1", 36)
	require.NoError(t, err)
	assert.False(t, on)

	var got []int
	for _, s := range f.svc.FavoriteSurahs(ctx, "u1") {
		got = append(got, s.Number)
	}
	assert.Equal(t, []int{18, 67}, got)

	_, err = f.svc.ToggleFavoriteSurah(ctx, "u1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidSurah)
}

func TestFavoritesAndProgressDoNotClobber(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.OpenSurah(ctx, "u1", 36, nil)
	require.NoError(t, err)
	_, err = f.svc.ScrollToPage(ctx, "u1", 4)
	require.NoError(t, err)
	_, err = f.svc.ToggleFavoriteSurah(ctx, "u1", 36)
	require.NoError(t, err)

	f.clock.Add(time.Second)
	assert.Eventually(t, func() bool {
		return f.svc.Preferences(ctx, "u1").Progress(36) > 15
	}, waitFor, tick)
	assert.True(t, f.svc.Preferences(ctx, "u1").IsFavoriteSurah(36))
}

func TestSubmitFeedback(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	fb := domain.Feedback{Name: "Ahmad", Email: "ahmad@example.com", Message: "Mohon tambahkan tafsir"}
	require.NoError(t, f.svc.SubmitFeedback(ctx, "u1", fb))

	require.Len(t, f.feedback.sent, 1)
	assert.NotEmpty(t, f.feedback.sent[0].ID)
	assert.Equal(t, fb.Message, f.feedback.sent[0].Message)
}

func TestSubmitFeedback_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.svc.SubmitFeedback(ctx, "u1", domain.Feedback{Message: "ok"})
	assert.ErrorIs(t, err, domain.ErrInvalidSetting)

	err = f.svc.SubmitFeedback(ctx, "u1", domain.Feedback{Email: "not-an-email", Message: "hello there"})
	assert.ErrorIs(t, err, domain.ErrInvalidSetting)
	assert.Empty(t, f.feedback.sent)
}

func TestSubmitFeedback_RateLimited(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	fb := domain.Feedback{Message: "Jazakallah khair"}

	require.NoError(t, f.svc.SubmitFeedback(ctx, "u1", fb))
	require.NoError(t, f.svc.SubmitFeedback(ctx, "u1", fb))
	err := f.svc.SubmitFeedback(ctx, "u1", fb)
	assert.ErrorIs(t, err, domain.ErrRateLimited)
	assert.True(t, IsUserError(err))

	// other users have their own bucket
	require.NoError(t, f.svc.SubmitFeedback(ctx, "u2", fb))

	f.clock.Add(30 * time.Second)
	require.NoError(t, f.svc.SubmitFeedback(ctx, "u1", fb))
}

func TestSubmitFeedback_RelayFailure(t *testing.T) {
	f := newFixture(t)
	f.feedback.err = errors.New("status 502")

	err := f.svc.SubmitFeedback(context.Background(), "u1", domain.Feedback{Message: "hello there"})
	require.Error(t, err)
	assert.False(t, IsUserError(err))
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benbjohnson/clock"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/escalopa/quran-reader/internal/adapter/i18n"
	"github.com/escalopa/quran-reader/internal/adapter/redis"
	"github.com/escalopa/quran-reader/internal/application"
	"github.com/escalopa/quran-reader/internal/domain"
	"github.com/escalopa/quran-reader/internal/logger"
	"github.com/escalopa/quran-reader/internal/preferences"
	"github.com/escalopa/quran-reader/internal/progress"
)

const testUser int64 = 42

type apiCall struct {
	method string
	params url.Values
}

// fakeTelegram answers Bot API calls and records them
type fakeTelegram struct {
	mu     sync.Mutex
	calls  []apiCall
	nextID int
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	method := path.Base(r.URL.Path)

	f.mu.Lock()
	f.calls = append(f.calls, apiCall{method: method, params: r.PostForm})
	f.nextID++
	id := f.nextID
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch method {
	case "getMe":
		fmt.Fprint(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"Reader","username":"reader_bot"}}`)
	case "sendMessage", "editMessageText":
		chatID, _ := strconv.ParseInt(r.PostForm.Get("chat_id"), 10, 64)
		fmt.Fprintf(w, `{"ok":true,"result":{"message_id":%d,"date":0,"chat":{"id":%d,"type":"private"}}}`, id, chatID)
	default:
		fmt.Fprint(w, `{"ok":true,"result":true}`)
	}
}

func (f *fakeTelegram) find(method string) []apiCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []apiCall
	for _, c := range f.calls {
		if c.method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeTelegram) last(method string) apiCall {
	calls := f.find(method)
	if len(calls) == 0 {
		return apiCall{params: url.Values{}}
	}
	return calls[len(calls)-1]
}

type stubContent struct {
	mu   sync.Mutex
	fail bool
}

func (s *stubContent) FetchSurah(_ context.Context, n int) ([]domain.Ayah, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return nil, errors.New("dial tcp: timeout")
	}
	surah, err := domain.GetSurah(n)
	if err != nil {
		return nil, err
	}
	ayahs := make([]domain.Ayah, surah.Ayahs)
	for i := range ayahs {
		ayahs[i] = domain.Ayah{SurahNumber: n, AyahNumber: i + 1, Text: "نص", Translation: fmt.Sprintf("terjemahan %d", i+1)}
	}
	return ayahs, nil
}

type stubPrayer struct{}

func (stubPrayer) PrayerTimes(_ context.Context, loc domain.Location, _ time.Time) (*domain.PrayerSchedule, error) {
	return &domain.PrayerSchedule{Date: "01 Mar 2026", Location: loc, Times: domain.FallbackPrayerTimes()}, nil
}

type stubFeedback struct {
	mu   sync.Mutex
	sent []domain.Feedback
}

func (s *stubFeedback) Submit(_ context.Context, fb domain.Feedback) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, fb)
	return nil
}

type harness struct {
	bot      *Bot
	api      *fakeTelegram
	service  *application.ReaderService
	content  *stubContent
	feedback *stubFeedback
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api:      &fakeTelegram{},
		content:  &stubContent{},
		feedback: &stubFeedback{},
	}
	srv := httptest.NewServer(h.api)
	t.Cleanup(srv.Close)

	client, err := redis.Connect(context.Background(), "redis://"+miniredis.RunT(t).Addr()+"/0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	log := logger.Discard()
	h.service = application.NewReaderService(application.Deps{
		Content:  h.content,
		Prayer:   stubPrayer{},
		Feedback: h.feedback,
		FSM:      redis.NewFSM(client),
		Registry: preferences.NewRegistry(preferences.NewMemoryBackend(), log),
		Clock:    clock.NewMock(),
		Log:      log,
	}, application.Config{
		Progress:     progress.Config{Debounce: time.Second, AutoScrollDelay: 600 * time.Millisecond},
		AyahsPerPage: 5,
	})
	t.Cleanup(h.service.Stop)

	translations, err := i18n.NewI18n("../../../locales")
	require.NoError(t, err)

	api, err := tgbotapi.NewBotAPIWithAPIEndpoint("TEST", srv.URL+"/bot%s/%s")
	require.NoError(t, err)
	h.bot = newBot(api, h.service, translations, log)
	return h
}

func (h *harness) command(text string) {
	cmd := strings.Fields(text)[0]
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUser, FirstName: "Ahmad"},
		Chat:      &tgbotapi.Chat{ID: testUser},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}})
}

func (h *harness) text(text string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 2,
		From:      &tgbotapi.User{ID: testUser, FirstName: "Ahmad"},
		Chat:      &tgbotapi.Chat{ID: testUser},
		Text:      text,
	}})
}

func (h *harness) press(data string) {
	h.bot.handleUpdate(context.Background(), tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: testUser},
		Message: &tgbotapi.Message{MessageID: 10, Chat: &tgbotapi.Chat{ID: testUser}},
		Data:    data,
	}})
}

func TestNewBot_RegistersCommands(t *testing.T) {
	h := newHarness(t)
	calls := h.api.find("setMyCommands")
	require.Len(t, calls, 1)
	assert.Contains(t, calls[0].params.Get("commands"), `"lanjut"`)
	assert.Contains(t, calls[0].params.Get("commands"), `"tajwid"`)
}

func TestCommandStart(t *testing.T) {
	h := newHarness(t)
	h.command("/start")

	sent := h.api.find("sendMessage")
	require.Len(t, sent, 2)
	assert.Contains(t, sent[0].params.Get("text"), "Assalamu'alaikum")
	assert.Equal(t, "Pilih surah:", sent[1].params.Get("text"))
	assert.Contains(t, sent[1].params.Get("reply_markup"), `"callback_data":"s:1"`)
	assert.NotContains(t, sent[1].params.Get("reply_markup"), `"callback_data":"c"`)
}

func TestCommandStart_OffersResume(t *testing.T) {
	h := newHarness(t)
	h.press("s:18")
	h.command("/start")

	markup := h.api.last("sendMessage").params.Get("reply_markup")
	assert.Contains(t, markup, `"callback_data":"c"`)
	assert.Contains(t, markup, "Al-Kahfi")
}

func TestOpenSurahCallback(t *testing.T) {
	h := newHarness(t)
	h.press("s:36")

	edit := h.api.last("editMessageText")
	assert.Equal(t, "10", edit.params.Get("message_id"))
	assert.Contains(t, edit.params.Get("text"), "<b>Yasin</b>")
	assert.Contains(t, edit.params.Get("text"), "Halaman 1/17")
	assert.Contains(t, edit.params.Get("reply_markup"), `"callback_data":"p:36:2"`)
	assert.Len(t, h.api.find("answerCallbackQuery"), 1)

	view, err := h.service.View(strconv.FormatInt(testUser, 10))
	require.NoError(t, err)
	assert.Equal(t, 36, view.Surah.Number)
}

func TestPageCallback(t *testing.T) {
	h := newHarness(t)
	h.press("s:36")
	h.press("p:36:3")

	edit := h.api.last("editMessageText")
	assert.Contains(t, edit.params.Get("text"), "Halaman 3/17")
	assert.Contains(t, edit.params.Get("text"), "terjemahan 11")
	assert.Contains(t, edit.params.Get("reply_markup"), `"callback_data":"p:36:2"`)

	// a page button of another surah reopens it
	h.press("p:67:2")
	assert.Contains(t, h.api.last("editMessageText").params.Get("text"), "Al-Mulk")
}

func TestOpenSurah_FetchFailureOffersRetry(t *testing.T) {
	h := newHarness(t)
	h.content.fail = true
	h.press("s:2")

	edit := h.api.last("editMessageText")
	assert.Contains(t, edit.params.Get("text"), "Gagal memuat surah Al-Baqarah")
	assert.Contains(t, edit.params.Get("reply_markup"), `"callback_data":"r:2"`)

	h.content.fail = false
	h.press("r:2")
	assert.Contains(t, h.api.last("editMessageText").params.Get("text"), "Halaman 1/58")
}

func TestBookmarkCallback(t *testing.T) {
	h := newHarness(t)
	h.press("s:1")
	h.press("b:1:2")

	assert.Equal(t, "Ayat 1:2 ditandai", h.api.last("answerCallbackQuery").params.Get("text"))
	assert.Contains(t, h.api.last("editMessageText").params.Get("reply_markup"), "🔖 2")

	h.command("/tanda")
	sent := h.api.last("sendMessage")
	assert.Contains(t, sent.params.Get("text"), "Al-Fatihah 1:2")
	assert.Contains(t, sent.params.Get("reply_markup"), `"callback_data":"bx:1:2:1"`)

	h.press("bx:1:2:1")
	assert.Contains(t, h.api.last("editMessageText").params.Get("text"), "Belum ada ayat yang ditandai.")
}

func TestFavoriteCallback(t *testing.T) {
	h := newHarness(t)
	h.press("s:67")
	h.press("f:67")

	assert.Equal(t, "Al-Mulk ditambahkan ke favorit", h.api.last("answerCallbackQuery").params.Get("text"))

	h.command("/favorit")
	assert.Contains(t, h.api.last("sendMessage").params.Get("text"), "67. <b>Al-Mulk</b>")
}

func TestFeedbackDialog(t *testing.T) {
	h := newHarness(t)
	userID := strconv.FormatInt(testUser, 10)

	h.command("/saran")
	assert.Equal(t, domain.StateAwaitFeedback, h.service.DialogState(context.Background(), userID))

	h.text("ok")
	assert.Equal(t, "Pesan harus 3 sampai 2000 karakter.", h.api.last("sendMessage").params.Get("text"))
	assert.Equal(t, domain.StateAwaitFeedback, h.service.DialogState(context.Background(), userID))

	h.text("Mohon tambahkan audio murottal")
	require.Len(t, h.feedback.sent, 1)
	assert.Equal(t, "Ahmad", h.feedback.sent[0].Name)
	assert.Equal(t, "Mohon tambahkan audio murottal", h.feedback.sent[0].Message)
	assert.Equal(t, domain.StateBrowsing, h.service.DialogState(context.Background(), userID))
}

func TestLocationDialog(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := strconv.FormatInt(testUser, 10)

	h.press("loc")
	assert.Equal(t, domain.StateAwaitLocation, h.service.DialogState(ctx, userID))

	h.text("somewhere")
	assert.Equal(t, "Koordinat tidak valid.", h.api.last("sendMessage").params.Get("text"))

	h.text("-7.7956, 110.3695")
	loc := h.service.Preferences(ctx, userID).Location
	require.NotNil(t, loc)
	assert.InDelta(t, -7.7956, loc.Latitude, 1e-9)
	assert.Equal(t, domain.StateBrowsing, h.service.DialogState(ctx, userID))
	assert.Contains(t, h.api.last("sendMessage").params.Get("text"), "Jadwal Sholat")
}

func TestCancelDialog(t *testing.T) {
	h := newHarness(t)
	userID := strconv.FormatInt(testUser, 10)

	h.press("fb")
	h.press("x")
	assert.Equal(t, domain.StateBrowsing, h.service.DialogState(context.Background(), userID))
	assert.Len(t, h.api.find("deleteMessage"), 1)
}

func TestSettingsCallbacks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	userID := strconv.FormatInt(testUser, 10)

	h.press("ft:arabic:1")
	h.press("d:showLatin")
	h.press("l:en")

	prefs := h.service.Preferences(ctx, userID)
	assert.Equal(t, 30, prefs.FontSize.Arabic)
	assert.False(t, prefs.ShowLatin)
	assert.Equal(t, domain.LangEnglish, prefs.Language)
	assert.Equal(t, "Language changed to English.", h.api.last("answerCallbackQuery").params.Get("text"))
	assert.Contains(t, h.api.last("editMessageText").params.Get("text"), "Settings")

	h.press("ft:huge:1")
	assert.Equal(t, "true", h.api.last("answerCallbackQuery").params.Get("show_alert"))
}

func TestCommandTajwid(t *testing.T) {
	h := newHarness(t)
	h.command("/tajwid")

	text := h.api.last("sendMessage").params.Get("text")
	assert.Contains(t, text, "<b>Panduan Tajwid</b>")
	for _, rule := range domain.TajwidRules() {
		assert.Contains(t, text, "<b>"+rule.Name+"</b>")
	}
	assert.Contains(t, text, "Kemenag RI")

	h.command("/tajwid iqlab")
	text = h.api.last("sendMessage").params.Get("text")
	assert.True(t, strings.HasPrefix(text, "<b>Iqlab</b>"))
	assert.NotContains(t, text, "Qalqalah")

	h.command("/tajwid idzhar")
	assert.Equal(t, "Hukum tajwid tidak dikenal. Ketik /tajwid untuk daftar lengkap.", h.api.last("sendMessage").params.Get("text"))
}

func TestReaderTajwidLegendFollowsSetting(t *testing.T) {
	h := newHarness(t)
	h.press("s:1")

	edit := h.api.last("editMessageText")
	assert.Contains(t, edit.params.Get("text"), "Tajwid: Ikhfa Haqiqi · Idgham Bighunnah")
	assert.Contains(t, edit.params.Get("reply_markup"), `"callback_data":"tj"`)

	h.press("tj")
	assert.Contains(t, h.api.last("sendMessage").params.Get("text"), "<b>Panduan Tajwid</b>")

	h.press("d:showTajwid")
	h.press("s:1")
	edit = h.api.last("editMessageText")
	assert.NotContains(t, edit.params.Get("text"), "Tajwid:")
	assert.NotContains(t, edit.params.Get("reply_markup"), `"callback_data":"tj"`)
}

func TestBareNumberOpensSurah(t *testing.T) {
	h := newHarness(t)
	h.text("112")
	assert.Contains(t, h.api.last("sendMessage").params.Get("text"), "Al-Ikhlas")

	h.text("assalamualaikum")
	assert.Contains(t, h.api.last("sendMessage").params.Get("text"), "/surah")
}

func TestUnknownCommand(t *testing.T) {
	h := newHarness(t)
	h.command("/murottal")
	assert.Equal(t, "Perintah tidak dikenal. Ketik /help untuk bantuan.", h.api.last("sendMessage").params.Get("text"))
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		in   string
		ok   bool
		lat  float64
		long float64
	}{
		{in: "-6.2088, 106.8456", ok: true, lat: -6.2088, long: 106.8456},
		{in: "-6.2088 106.8456", ok: true, lat: -6.2088, long: 106.8456},
		{in: "91, 0", ok: false},
		{in: "0, 181", ok: false},
		{in: "jakarta", ok: false},
		{in: "1, 2, 3", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			loc, ok := parseCoordinates(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.lat, loc.Latitude)
				assert.Equal(t, tt.long, loc.Longitude)
				assert.NotEmpty(t, loc.City)
			}
		})
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "0:00:00", formatDuration(0))
	assert.Equal(t, "1:01:05", formatDuration(3665))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, 1, surahListPage(10))
	assert.Equal(t, 2, surahListPage(11))
	assert.Equal(t, 12, surahListPage(114))

	start, end, page, total := pageBounds(12, 5, 9)
	assert.Equal(t, []int{10, 12, 3, 3}, []int{start, end, page, total})
}

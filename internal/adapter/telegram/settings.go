package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-reader/internal/domain"
)

var languageLabels = map[domain.Language]string{
	domain.LangIndonesian: "🇮🇩 Bahasa Indonesia",
	domain.LangJavanese:   "Basa Jawa",
	domain.LangEnglish:    "🇬🇧 English",
}

var fontKeys = []struct {
	kind domain.FontKind
	key  string
}{
	{domain.FontArabic, "settings.font_arabic"},
	{domain.FontLatin, "settings.font_latin"},
	{domain.FontTranslation, "settings.font_translation"},
}

var displayKeys = []struct {
	setting domain.DisplaySetting
	key     string
}{
	{domain.SettingShowLatin, "settings.show_latin"},
	{domain.SettingShowTranslation, "settings.show_translation"},
	{domain.SettingShowTajwid, "settings.show_tajwid"},
	{domain.SettingDarkMode, "settings.dark_mode"},
}

func (b *Bot) editSettings(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	text, keyboard := b.formatSettings(lang, b.service.Preferences(ctx, userID))
	b.editMessage(msg, text, keyboard)
}

func (b *Bot) formatSettings(lang domain.Language, prefs domain.ReadingPreferences) (string, tgbotapi.InlineKeyboardMarkup) {
	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b>\n\n", b.i18n.Get(lang, "settings.title"))

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, f := range fontKeys {
		label := b.i18n.Get(lang, f.key)
		size := prefs.Font(f.kind)
		fmt.Fprintf(&text, "%s\n", b.i18n.Get(lang, "settings.font", label, size))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➖", callbackData(actFont, f.kind, -1)),
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%s %d", label, size), actNoop),
			tgbotapi.NewInlineKeyboardButtonData("➕", callbackData(actFont, f.kind, 1)),
		))
	}

	var toggles []tgbotapi.InlineKeyboardButton
	for _, d := range displayKeys {
		on, _ := prefs.Display(d.setting)
		mark := "⬜"
		if on {
			mark = "✅"
		}
		toggles = append(toggles, tgbotapi.NewInlineKeyboardButtonData(
			mark+" "+b.i18n.Get(lang, d.key),
			callbackData(actDisplay, d.setting),
		))
	}
	rows = append(rows, toggles[:2], toggles[2:])

	rows = append(rows,
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "settings.language"), actLanguageMenu),
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "settings.location"), actLocation),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "feedback.button"), actFeedback),
		),
	)

	fmt.Fprintf(&text, "\n%s", b.i18n.Get(lang, "settings.reading_time", formatDuration(prefs.ReadingDuration)))
	if prefs.Location != nil {
		fmt.Fprintf(&text, "\n📍 %s", html.EscapeString(prefs.Location.City))
	}

	return text.String(), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) languageKeyboard() tgbotapi.InlineKeyboardMarkup {
	var row []tgbotapi.InlineKeyboardButton
	for _, lang := range domain.Languages() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(languageLabels[lang], callbackData(actLanguage, lang)))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

func (b *Bot) formatPrayerTimes(ctx context.Context, userID string, lang domain.Language) (string, tgbotapi.InlineKeyboardMarkup) {
	schedule := b.service.PrayerTimes(ctx, userID)

	city := schedule.Location.City
	if city == "" {
		city = formatCoordinates(schedule.Location)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b>\n", b.i18n.Get(lang, "prayer.title", html.EscapeString(city)))
	fmt.Fprintf(&text, "%s", schedule.Date)
	if schedule.HijriDate != "" {
		fmt.Fprintf(&text, " · %s", schedule.HijriDate)
	}
	text.WriteString("\n\n")

	for _, p := range schedule.Times {
		fmt.Fprintf(&text, "<code>%-8s %s</code>  %s\n", p.Name, p.Time, p.NameArabic)
	}
	if next, ok := b.service.NextPrayer(schedule); ok {
		fmt.Fprintf(&text, "\n%s\n", b.i18n.Get(lang, "prayer.next", next.Name, next.Time))
	}
	if schedule.Fallback {
		fmt.Fprintf(&text, "\n%s\n", b.i18n.Get(lang, "prayer.fallback"))
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔄", actPrayer),
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "prayer.set_location"), actLocation),
		),
	)
	return text.String(), keyboard
}

func (b *Bot) saveLocation(ctx context.Context, chatID int64, userID string, lang domain.Language, loc domain.Location) {
	if err := b.service.SetLocation(ctx, userID, loc); err != nil {
		b.sendMessage(chatID, b.i18n.Get(lang, "location.invalid"))
		return
	}
	if err := b.service.SetDialogState(ctx, userID, domain.StateBrowsing); err != nil {
		b.log.Warn("reset dialog state", "user_id", userID, "error", err)
	}

	b.sendMessage(chatID, b.i18n.Get(lang, "location.saved", loc.City))
	text, keyboard := b.formatPrayerTimes(ctx, userID, lang)
	b.sendWithKeyboard(chatID, text, keyboard)
}

func (b *Bot) submitFeedback(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	chatID := msg.Chat.ID
	fb := domain.Feedback{Message: strings.TrimSpace(msg.Text)}
	if msg.From != nil {
		fb.Name = strings.TrimSpace(msg.From.FirstName + " " + msg.From.LastName)
	}

	err := b.service.SubmitFeedback(ctx, userID, fb)
	switch {
	case errors.Is(err, domain.ErrInvalidSetting):
		// stay in the dialog so the user can fix the message
		b.sendMessage(chatID, b.i18n.Get(lang, "feedback.invalid"))
		return
	case err != nil:
		b.sendMessage(chatID, b.errorText(lang, err))
	default:
		b.sendMessage(chatID, b.i18n.Get(lang, "feedback.sent"))
	}

	if err := b.service.SetDialogState(ctx, userID, domain.StateBrowsing); err != nil {
		b.log.Warn("reset dialog state", "user_id", userID, "error", err)
	}
}

// parseCoordinates reads "lat, lon" or "lat lon"
func parseCoordinates(s string) (domain.Location, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' })
	if len(fields) != 2 {
		return domain.Location{}, false
	}
	lat, err1 := strconv.ParseFloat(fields[0], 64)
	lon, err2 := strconv.ParseFloat(fields[1], 64)
	if err1 != nil || err2 != nil || lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return domain.Location{}, false
	}
	loc := domain.Location{Latitude: lat, Longitude: lon}
	loc.City = formatCoordinates(loc)
	return loc, true
}

func formatCoordinates(loc domain.Location) string {
	return fmt.Sprintf("%.4f, %.4f", loc.Latitude, loc.Longitude)
}

// formatDuration renders seconds as H:MM:SS
func formatDuration(seconds int64) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%d:%02d:%02d", seconds/3600, seconds/60%60, seconds%60)
}

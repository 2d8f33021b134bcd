package telegram

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-reader/internal/application"
	"github.com/escalopa/quran-reader/internal/domain"
)

const bookmarkButtonsPerRow = 5

// readerMessage is the chat message showing an open surah. The resume scroll
// may fire before the message has been sent, so the requested page is kept
// until the message ID is known.
type readerMessage struct {
	mu        sync.Mutex
	chatID    int64
	messageID int
	want      int
}

// scrolled records the page the view jumped to and returns the message to edit, 0 if not sent yet
func (m *readerMessage) scrolled(page int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.want = page
	return m.messageID
}

// sent records the message ID and returns a page requested in the meantime, 0 if none
func (m *readerMessage) sent(messageID, shown int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messageID = messageID
	if m.want != 0 && m.want != shown {
		return m.want
	}
	return 0
}

// openSurah opens the surah and shows its first page, replacing the message
// with ID editID when it is not zero. Resume scrolls edit the page in place.
func (b *Bot) openSurah(ctx context.Context, chatID int64, editID int, userID string, lang domain.Language, surahNumber int) {
	ref := &readerMessage{chatID: chatID, messageID: editID}

	view, err := b.service.OpenSurah(ctx, userID, surahNumber, func(ayah, page int) {
		if id := ref.scrolled(page); id != 0 {
			b.showPage(ctx, chatID, id, userID, lang, page)
		}
	})
	if err != nil {
		b.openFailed(chatID, editID, lang, surahNumber, err)
		return
	}

	shown := view.Page()
	text, keyboard := b.renderPage(ctx, userID, lang, view, shown)

	messageID := editID
	if editID != 0 {
		b.editByID(chatID, editID, text, keyboard)
	} else {
		messageID = b.sendWithKeyboard(chatID, text, keyboard)
	}
	if messageID == 0 {
		return
	}
	if page := ref.sent(messageID, shown); page != 0 {
		b.showPage(ctx, chatID, messageID, userID, lang, page)
	}
}

func (b *Bot) openFailed(chatID int64, editID int, lang domain.Language, surahNumber int, err error) {
	if !errors.Is(err, domain.ErrContentUnavailable) {
		b.sendMessage(chatID, b.errorText(lang, err))
		return
	}

	text := b.i18n.Get(lang, "error.content_unavailable", b.i18n.GetSurahName(lang, surahNumber))
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "retry"), callbackData(actRetry, surahNumber)),
			tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "nav.list"), callbackData(actSurahList, surahListPage(surahNumber))),
		),
	)
	if editID != 0 {
		b.editByID(chatID, editID, text, keyboard)
		return
	}
	b.sendWithKeyboard(chatID, text, keyboard)
}

// showPage re-renders the open view at page into an existing message
func (b *Bot) showPage(ctx context.Context, chatID int64, messageID int, userID string, lang domain.Language, page int) {
	view, err := b.service.View(userID)
	if err != nil {
		return
	}
	text, keyboard := b.renderPage(ctx, userID, lang, view, page)
	b.editByID(chatID, messageID, text, keyboard)
}

// turnPage moves the open view to page. A stale button for another surah, or
// a button pressed after the view expired, reopens that surah.
func (b *Bot) turnPage(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, surahNumber, page int) string {
	view, err := b.service.View(userID)
	if err != nil || view.Surah.Number != surahNumber {
		b.openSurah(ctx, msg.Chat.ID, msg.MessageID, userID, lang, surahNumber)
		return ""
	}

	if _, err := b.service.ScrollToPage(ctx, userID, page); err != nil {
		return b.errorText(lang, err)
	}
	text, keyboard := b.renderPage(ctx, userID, lang, view, page)
	b.editMessage(msg, text, keyboard)
	return ""
}

func (b *Bot) toggleFavorite(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, surahNumber int) string {
	on, err := b.service.ToggleFavoriteSurah(ctx, userID, surahNumber)
	if err != nil {
		return b.errorText(lang, err)
	}
	if view, err := b.service.View(userID); err == nil && view.Surah.Number == surahNumber {
		text, keyboard := b.renderPage(ctx, userID, lang, view, view.Page())
		b.editMessage(msg, text, keyboard)
	}

	name := b.i18n.GetSurahName(lang, surahNumber)
	if on {
		return b.i18n.Get(lang, "favorite.added", name)
	}
	return b.i18n.Get(lang, "favorite.removed", name)
}

func (b *Bot) toggleBookmark(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language, surahNumber, ayah int) string {
	on, err := b.service.ToggleBookmark(ctx, userID, surahNumber, ayah)
	if err != nil {
		return b.errorText(lang, err)
	}
	if view, err := b.service.View(userID); err == nil && view.Surah.Number == surahNumber {
		text, keyboard := b.renderPage(ctx, userID, lang, view, view.PageOf(ayah))
		b.editMessage(msg, text, keyboard)
	}

	if on {
		return b.i18n.Get(lang, "bookmark.added", surahNumber, ayah)
	}
	return b.i18n.Get(lang, "bookmark.removed", surahNumber, ayah)
}

func (b *Bot) resume(ctx context.Context, chatID int64, editID int, userID string, lang domain.Language) {
	surah, _, ok := b.service.ResumePoint(ctx, userID)
	if !ok {
		b.sendMessage(chatID, b.i18n.Get(lang, "resume.none"))
		return
	}
	b.openSurah(ctx, chatID, editID, userID, lang, surah.Number)
}

// renderPage formats a page of the view following the user's display settings
func (b *Bot) renderPage(ctx context.Context, userID string, lang domain.Language, view *application.View, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	prefs := b.service.Preferences(ctx, userID)
	surah := view.Surah
	ayahs := view.PageAyahs(page)

	var text strings.Builder
	text.WriteString(b.i18n.Get(lang, "reader.header",
		html.EscapeString(b.i18n.GetSurahName(lang, surah.Number)),
		surah.NameArabic,
		html.EscapeString(surah.Meaning),
		surah.Ayahs,
		surah.Revelation,
	))
	text.WriteString("\n")
	text.WriteString(b.i18n.Get(lang, "reader.page", page, view.Pages()))
	if view.ResumeAyah > 1 {
		text.WriteString(" · ")
		text.WriteString(b.i18n.Get(lang, "reader.resumed", view.ResumeAyah))
	}
	if prefs.ShowTajwid {
		text.WriteString("\n")
		text.WriteString(b.i18n.Get(lang, "reader.tajwid", domain.TajwidLegend(" · ")))
	}
	text.WriteString("\n")

	for _, a := range ayahs {
		block := formatAyah(a, prefs)
		// whole ayahs only, the closing markup must survive
		if utf8.RuneCountInString(text.String())+utf8.RuneCountInString(block) > maxMessageLength-2 {
			text.WriteString("\n…")
			break
		}
		text.WriteString(block)
	}

	return text.String(), b.pageKeyboard(lang, prefs, view, ayahs, page)
}

func formatAyah(a domain.Ayah, prefs domain.ReadingPreferences) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\n<b>﴿%d﴾</b> %s\n", a.AyahNumber, html.EscapeString(a.Text))
	if prefs.ShowLatin && a.Transliteration != "" {
		fmt.Fprintf(&sb, "<i>%s</i>\n", html.EscapeString(a.Transliteration))
	}
	if prefs.ShowTranslation && a.Translation != "" {
		fmt.Fprintf(&sb, "%s\n", html.EscapeString(a.Translation))
	}
	return sb.String()
}

func (b *Bot) pageKeyboard(lang domain.Language, prefs domain.ReadingPreferences, view *application.View, ayahs []domain.Ayah, page int) tgbotapi.InlineKeyboardMarkup {
	surah := view.Surah.Number
	var rows [][]tgbotapi.InlineKeyboardButton

	// bookmark toggles for the ayahs on the page
	var row []tgbotapi.InlineKeyboardButton
	for _, a := range ayahs {
		label := fmt.Sprintf("%d", a.AyahNumber)
		if prefs.BookmarkIndex(surah, a.AyahNumber) >= 0 {
			label = "🔖 " + label
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, callbackData(actBookmark, surah, a.AyahNumber)))
		if len(row) == bookmarkButtonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	if nav := b.pagerRow(lang, page, view.Pages(), func(p int) string { return callbackData(actPage, surah, p) }); len(nav) > 0 {
		rows = append(rows, nav)
	}

	favKey := "favorite.add"
	if prefs.IsFavoriteSurah(surah) {
		favKey = "favorite.remove"
	}
	actions := tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, favKey), callbackData(actFavorite, surah)),
		tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "nav.list"), callbackData(actSurahList, surahListPage(surah))),
	)
	if prefs.ShowTajwid {
		actions = append(actions, tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "tajwid.button"), actTajwid))
	}
	rows = append(rows, actions)

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// pagerRow builds the navigation row of a paginated message. Pages are one based.
func (b *Bot) pagerRow(lang domain.Language, page, total int, data func(page int) string) []tgbotapi.InlineKeyboardButton {
	if total <= 1 {
		return nil
	}
	var row []tgbotapi.InlineKeyboardButton
	if page > 1 {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ "+b.i18n.Get(lang, "nav.prev"), data(page-1)))
	}
	row = append(row, tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%d/%d", page, total), actNoop))
	if page < total {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "nav.next")+" ➡️", data(page+1)))
	}
	return row
}

package telegram

import (
	"fmt"
	"html"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-reader/internal/domain"
)

const (
	favoritesPerPage = 5
	snippetLength    = 80
)

// pageBounds clamps page to [1, totalPages] and returns the slice bounds for it
func pageBounds(n, perPage, page int) (start, end, clamped, totalPages int) {
	totalPages = max((n+perPage-1)/perPage, 1)
	clamped = min(max(page, 1), totalPages)
	start = (clamped - 1) * perPage
	end = min(start+perPage, n)
	return start, end, clamped, totalPages
}

// formatFavoritesList formats favourite surahs into a paginated list with keyboard
func (b *Bot) formatFavoritesList(lang domain.Language, surahs []domain.Surah, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b>\n\n", b.i18n.Get(lang, "favorites.title"))

	if len(surahs) == 0 {
		text.WriteString(b.i18n.Get(lang, "favorites.empty"))
		return text.String(), b.listFooter(lang, nil)
	}

	start, end, page, totalPages := pageBounds(len(surahs), favoritesPerPage, page)

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, s := range surahs[start:end] {
		name := b.i18n.GetSurahName(lang, s.Number)
		fmt.Fprintf(&text, "★ %d. <b>%s</b> · %s · %d\n", s.Number, html.EscapeString(name), s.NameArabic, s.Ayahs)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("📖 %d. %s", s.Number, name), callbackData(actSurah, s.Number)),
		))
	}

	if nav := b.pagerRow(lang, page, totalPages, func(p int) string { return callbackData(actFavoriteList, p) }); len(nav) > 0 {
		rows = append(rows, nav)
	}
	return text.String(), b.listFooter(lang, rows)
}

// formatBookmarksList formats bookmarked ayahs, most recent first, into a paginated list
func (b *Bot) formatBookmarksList(lang domain.Language, bookmarks []domain.BookmarkedAyah, page int) (string, tgbotapi.InlineKeyboardMarkup) {
	var text strings.Builder
	fmt.Fprintf(&text, "<b>%s</b>\n\n", b.i18n.Get(lang, "bookmarks.title"))

	if len(bookmarks) == 0 {
		text.WriteString(b.i18n.Get(lang, "bookmarks.empty"))
		return text.String(), b.listFooter(lang, nil)
	}

	start, end, page, totalPages := pageBounds(len(bookmarks), favoritesPerPage, page)

	var rows [][]tgbotapi.InlineKeyboardButton
	for i := start; i < end; i++ {
		bm := bookmarks[len(bookmarks)-1-i]
		date := time.UnixMilli(bm.Timestamp).UTC().Format("2006-01-02")

		fmt.Fprintf(&text, "🔖 <b>%s %d:%d</b> · %s\n", html.EscapeString(bm.SurahName), bm.SurahID, bm.AyahNumber, date)
		if bm.Text != "" {
			fmt.Fprintf(&text, "%s\n", html.EscapeString(truncate(bm.Text, snippetLength)))
		}
		text.WriteString("\n")

		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("📖 %s %d:%d", bm.SurahName, bm.SurahID, bm.AyahNumber),
				callbackData(actSurah, bm.SurahID),
			),
			tgbotapi.NewInlineKeyboardButtonData("❌", callbackData(actUnbookmark, bm.SurahID, bm.AyahNumber, page)),
		))
	}

	if nav := b.pagerRow(lang, page, totalPages, func(p int) string { return callbackData(actBookmarkList, p) }); len(nav) > 0 {
		rows = append(rows, nav)
	}
	return text.String(), b.listFooter(lang, rows)
}

func (b *Bot) listFooter(lang domain.Language, rows [][]tgbotapi.InlineKeyboardButton) tgbotapi.InlineKeyboardMarkup {
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "favorites.title"), callbackData(actFavoriteList, 1)),
		tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "bookmarks.title"), callbackData(actBookmarkList, 1)),
	))
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "nav.list"), callbackData(actSurahList, 1)),
	))
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

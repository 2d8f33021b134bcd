package telegram

import (
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-reader/internal/adapter/i18n"
	"github.com/escalopa/quran-reader/internal/domain"
)

const (
	surahsPerPage = 10
	juzPerRow     = 6
)

// surahListPage returns the list page holding the surah
func surahListPage(surahNumber int) int {
	return (surahNumber-1)/surahsPerPage + 1
}

func (b *Bot) surahKeyboard(lang domain.Language, page int) tgbotapi.InlineKeyboardMarkup {
	surahs := domain.GetAllSurahs()
	totalPages := (len(surahs) + surahsPerPage - 1) / surahsPerPage
	page = min(max(page, 1), totalPages)

	start := (page - 1) * surahsPerPage
	end := min(start+surahsPerPage, len(surahs))

	rows := b.surahButtons(lang, surahs[start:end])
	if nav := b.pagerRow(lang, page, totalPages, func(p int) string { return callbackData(actSurahList, p) }); len(nav) > 0 {
		rows = append(rows, nav)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(b.i18n.Get(lang, "juz.select"), actJuzList),
	))

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// surahButtons lays out open buttons two per row
func (b *Bot) surahButtons(lang domain.Language, surahs []domain.Surah) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	for i := 0; i < len(surahs); i += 2 {
		row := tgbotapi.NewInlineKeyboardRow(b.surahButton(lang, surahs[i]))
		if i+1 < len(surahs) {
			row = append(row, b.surahButton(lang, surahs[i+1]))
		}
		rows = append(rows, row)
	}
	return rows
}

func (b *Bot) surahButton(lang domain.Language, s domain.Surah) tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardButtonData(
		i18n.FormatSurahButton(lang, b.i18n, s.Number),
		callbackData(actSurah, s.Number),
	)
}

func (b *Bot) juzKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for juz := 1; juz <= domain.JuzCount; juz++ {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(strconv.Itoa(juz), callbackData(actJuz, juz)))
		if len(row) == juzPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) juzSurahs(lang domain.Language, juz int) (string, tgbotapi.InlineKeyboardMarkup) {
	surahs := domain.SurahsInJuz(juz)
	if len(surahs) == 0 {
		return b.i18n.Get(lang, "juz.select"), b.juzKeyboard()
	}

	rows := b.surahButtons(lang, surahs)
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("⬅️ "+b.i18n.Get(lang, "nav.back"), actJuzList),
	))
	return b.i18n.Get(lang, "juz.surahs", juz), tgbotapi.NewInlineKeyboardMarkup(rows...)
}

package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-reader/internal/domain"
)

type CommandHandler func(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language)

// registerCommands registers all bot commands
func (b *Bot) registerCommands() {
	b.commands = map[string]CommandHandler{
		"start":      b.commandStart,
		"help":       b.commandHelp,
		"surah":      b.commandSurah,
		"juz":        b.commandJuz,
		"lanjut":     b.commandContinue,
		"favorit":    b.commandFavorites,
		"tanda":      b.commandBookmarks,
		"sholat":     b.commandPrayer,
		"pengaturan": b.commandSettings,
		"bahasa":     b.commandLanguage,
		"tajwid":     b.commandTajwid,
		"saran":      b.commandFeedback,
	}

	// Set bot commands for Telegram UI
	commands := []tgbotapi.BotCommand{
		{Command: "surah", Description: "Daftar surah"},
		{Command: "lanjut", Description: "Lanjutkan bacaan terakhir"},
		{Command: "juz", Description: "Daftar juz"},
		{Command: "favorit", Description: "Surah favorit"},
		{Command: "tanda", Description: "Ayat yang ditandai"},
		{Command: "sholat", Description: "Jadwal sholat"},
		{Command: "pengaturan", Description: "Pengaturan tampilan"},
		{Command: "tajwid", Description: "Panduan tajwid"},
		{Command: "saran", Description: "Kirim saran & masukan"},
		{Command: "help", Description: "Bantuan"},
	}

	cmdConfig := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(cmdConfig); err != nil {
		b.log.Warn("set bot commands", "error", err)
	}
}

func (b *Bot) commandStart(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "welcome.message"))

	keyboard := b.surahKeyboard(lang, 1)
	if surah, ayah, ok := b.service.ResumePoint(ctx, userID); ok {
		resume := tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonData(
			b.i18n.Get(lang, "resume.button", b.i18n.GetSurahName(lang, surah.Number), ayah),
			actResume,
		))
		keyboard.InlineKeyboard = append([][]tgbotapi.InlineKeyboardButton{resume}, keyboard.InlineKeyboard...)
	}
	b.sendWithKeyboard(msg.Chat.ID, b.i18n.Get(lang, "surah.select"), keyboard)
}

func (b *Bot) commandHelp(_ context.Context, msg *tgbotapi.Message, _ string, lang domain.Language) {
	b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "help.message"))
}

// commandSurah lists surahs, or opens one when given a number: /surah 36
func (b *Bot) commandSurah(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil {
			b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.invalid_input"))
			return
		}
		b.openSurah(ctx, msg.Chat.ID, 0, userID, lang, n)
		return
	}
	b.sendWithKeyboard(msg.Chat.ID, b.i18n.Get(lang, "surah.select"), b.surahKeyboard(lang, 1))
}

func (b *Bot) commandJuz(_ context.Context, msg *tgbotapi.Message, _ string, lang domain.Language) {
	if juz, err := strconv.Atoi(strings.TrimSpace(msg.CommandArguments())); err == nil {
		text, keyboard := b.juzSurahs(lang, juz)
		b.sendWithKeyboard(msg.Chat.ID, text, keyboard)
		return
	}
	b.sendWithKeyboard(msg.Chat.ID, b.i18n.Get(lang, "juz.select"), b.juzKeyboard())
}

func (b *Bot) commandContinue(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	b.resume(ctx, msg.Chat.ID, 0, userID, lang)
}

func (b *Bot) commandFavorites(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	text, keyboard := b.formatFavoritesList(lang, b.service.FavoriteSurahs(ctx, userID), 1)
	b.sendWithKeyboard(msg.Chat.ID, text, keyboard)
}

func (b *Bot) commandBookmarks(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	text, keyboard := b.formatBookmarksList(lang, b.service.Bookmarks(ctx, userID), 1)
	b.sendWithKeyboard(msg.Chat.ID, text, keyboard)
}

func (b *Bot) commandPrayer(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	text, keyboard := b.formatPrayerTimes(ctx, userID, lang)
	b.sendWithKeyboard(msg.Chat.ID, text, keyboard)
}

func (b *Bot) commandSettings(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	text, keyboard := b.formatSettings(lang, b.service.Preferences(ctx, userID))
	b.sendWithKeyboard(msg.Chat.ID, text, keyboard)
}

func (b *Bot) commandLanguage(_ context.Context, msg *tgbotapi.Message, _ string, lang domain.Language) {
	b.sendWithKeyboard(msg.Chat.ID, b.i18n.Get(lang, "language.select"), b.languageKeyboard())
}

func (b *Bot) commandFeedback(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	b.startDialog(ctx, msg.Chat.ID, userID, lang, domain.StateAwaitFeedback, "feedback.prompt")
}

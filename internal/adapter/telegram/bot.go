package telegram

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-reader/internal/application"
	"github.com/escalopa/quran-reader/internal/domain"
)

// Telegram rejects messages longer than this many characters
const maxMessageLength = 4096

type Bot struct {
	api      *tgbotapi.BotAPI
	service  *application.ReaderService
	i18n     domain.I18nPort
	log      *slog.Logger
	commands map[string]CommandHandler
	cancel   context.CancelFunc
}

func NewBot(token string, service *application.ReaderService, i18n domain.I18nPort, log *slog.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return newBot(api, service, i18n, log), nil
}

func newBot(api *tgbotapi.BotAPI, service *application.ReaderService, i18n domain.I18nPort, log *slog.Logger) *Bot {
	bot := &Bot{
		api:     api,
		service: service,
		i18n:    i18n,
		log:     log.With("component", "telegram"),
	}
	bot.registerCommands()
	return bot
}

func (b *Bot) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	b.cancel = cancel

	b.log.Info("authorized", "account", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) Stop() error {
	if b.cancel != nil {
		b.cancel()
	}
	b.api.StopReceivingUpdates()
	return nil
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	userID := b.getUserID(update)
	if userID == "" {
		return
	}

	lang := b.service.Preferences(ctx, userID).Language

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery, userID, lang)
	case update.Message == nil:
	case update.Message.IsCommand():
		b.handleCommand(ctx, update.Message, userID, lang)
	case update.Message.Location != nil:
		b.handleLocation(ctx, update.Message, userID, lang)
	case update.Message.Text != "":
		b.handleText(ctx, update.Message, userID, lang)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	handler, exists := b.commands[msg.Command()]
	if !exists {
		b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "error.unknown_command"))
		return
	}

	// any command abandons a pending dialog
	if err := b.service.SetDialogState(ctx, userID, domain.StateBrowsing); err != nil {
		b.log.Warn("reset dialog state", "user_id", userID, "error", err)
	}
	handler(ctx, msg, userID, lang)
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery, userID string, lang domain.Language) {
	if query.Message == nil {
		b.answerCallback(query.ID, "", false)
		return
	}
	msg := query.Message
	chatID := msg.Chat.ID
	c := parseCallback(query.Data)

	var toast string
	alert := false

	switch c.action {
	case actNoop:

	case actSurahList:
		page, _ := c.int(0)
		b.editMessage(msg, b.i18n.Get(lang, "surah.select"), b.surahKeyboard(lang, page))

	case actSurah, actRetry:
		surah, ok := c.int(0)
		if !ok {
			toast, alert = b.i18n.Get(lang, "error.invalid_input"), true
			break
		}
		b.openSurah(ctx, chatID, msg.MessageID, userID, lang, surah)

	case actPage:
		surah, ok1 := c.int(0)
		page, ok2 := c.int(1)
		if !ok1 || !ok2 {
			toast, alert = b.i18n.Get(lang, "error.invalid_input"), true
			break
		}
		toast = b.turnPage(ctx, msg, userID, lang, surah, page)

	case actFavorite:
		surah, _ := c.int(0)
		toast = b.toggleFavorite(ctx, msg, userID, lang, surah)

	case actBookmark:
		surah, _ := c.int(0)
		ayah, _ := c.int(1)
		toast = b.toggleBookmark(ctx, msg, userID, lang, surah, ayah)

	case actResume:
		b.resume(ctx, chatID, msg.MessageID, userID, lang)

	case actJuzList:
		b.editMessage(msg, b.i18n.Get(lang, "juz.select"), b.juzKeyboard())

	case actJuz:
		juz, _ := c.int(0)
		text, keyboard := b.juzSurahs(lang, juz)
		b.editMessage(msg, text, keyboard)

	case actFavoriteList:
		page, _ := c.int(0)
		text, keyboard := b.formatFavoritesList(lang, b.service.FavoriteSurahs(ctx, userID), page)
		b.editMessage(msg, text, keyboard)

	case actBookmarkList:
		page, _ := c.int(0)
		text, keyboard := b.formatBookmarksList(lang, b.service.Bookmarks(ctx, userID), page)
		b.editMessage(msg, text, keyboard)

	case actUnbookmark:
		surah, _ := c.int(0)
		ayah, _ := c.int(1)
		page, _ := c.int(2)
		if _, err := b.service.ToggleBookmark(ctx, userID, surah, ayah); err != nil {
			toast, alert = b.errorText(lang, err), true
			break
		}
		text, keyboard := b.formatBookmarksList(lang, b.service.Bookmarks(ctx, userID), page)
		b.editMessage(msg, text, keyboard)
		toast = b.i18n.Get(lang, "bookmark.removed", surah, ayah)

	case actSettings:
		b.editSettings(ctx, msg, userID, lang)

	case actFont:
		steps, _ := c.int(1)
		if _, err := b.service.AdjustFontSize(ctx, userID, domain.FontKind(c.str(0)), steps); err != nil {
			toast, alert = b.errorText(lang, err), true
			break
		}
		b.editSettings(ctx, msg, userID, lang)

	case actDisplay:
		if _, err := b.service.ToggleDisplay(ctx, userID, domain.DisplaySetting(c.str(0))); err != nil {
			toast, alert = b.errorText(lang, err), true
			break
		}
		b.editSettings(ctx, msg, userID, lang)

	case actLanguageMenu:
		b.editMessage(msg, b.i18n.Get(lang, "language.select"), b.languageKeyboard())

	case actLanguage:
		newLang := domain.Language(c.str(0))
		if err := b.service.SetLanguage(ctx, userID, newLang); err != nil {
			toast, alert = b.errorText(lang, err), true
			break
		}
		toast = b.i18n.Get(newLang, "language.changed")
		b.editSettings(ctx, msg, userID, newLang)

	case actPrayer:
		text, keyboard := b.formatPrayerTimes(ctx, userID, lang)
		b.editMessage(msg, text, keyboard)

	case actTajwid:
		b.sendMessage(chatID, b.formatTajwidGuide(lang))

	case actLocation:
		b.startDialog(ctx, chatID, userID, lang, domain.StateAwaitLocation, "location.prompt")

	case actFeedback:
		b.startDialog(ctx, chatID, userID, lang, domain.StateAwaitFeedback, "feedback.prompt")

	case actCancel:
		if err := b.service.SetDialogState(ctx, userID, domain.StateBrowsing); err != nil {
			b.log.Warn("reset dialog state", "user_id", userID, "error", err)
		}
		b.deleteMessage(chatID, msg.MessageID)
		toast = b.i18n.Get(lang, "cancelled")

	default:
		b.log.Debug("unknown callback", "data", query.Data)
	}

	b.answerCallback(query.ID, toast, alert)
}

func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	chatID := msg.Chat.ID

	switch b.service.DialogState(ctx, userID) {
	case domain.StateAwaitFeedback:
		b.submitFeedback(ctx, msg, userID, lang)
		return
	case domain.StateAwaitLocation:
		loc, ok := parseCoordinates(msg.Text)
		if !ok {
			b.sendMessage(chatID, b.i18n.Get(lang, "location.invalid"))
			return
		}
		b.saveLocation(ctx, chatID, userID, lang, loc)
		return
	}

	// a bare number opens that surah
	if n, err := strconv.Atoi(strings.TrimSpace(msg.Text)); err == nil {
		b.openSurah(ctx, chatID, 0, userID, lang, n)
		return
	}

	b.sendMessage(chatID, b.i18n.Get(lang, "help.message"))
}

func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message, userID string, lang domain.Language) {
	loc := domain.Location{
		Latitude:  msg.Location.Latitude,
		Longitude: msg.Location.Longitude,
	}
	loc.City = formatCoordinates(loc)
	b.saveLocation(ctx, msg.Chat.ID, userID, lang, loc)
}

func (b *Bot) startDialog(ctx context.Context, chatID int64, userID string, lang domain.Language, state domain.State, promptKey string) {
	if err := b.service.SetDialogState(ctx, userID, state); err != nil {
		b.log.Error("set dialog state", "user_id", userID, "state", state, "error", err)
		b.sendMessage(chatID, b.i18n.Get(lang, "error.generic"))
		return
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ "+b.i18n.Get(lang, "cancel"), actCancel),
		),
	)
	b.sendWithKeyboard(chatID, b.i18n.Get(lang, promptKey), keyboard)
}

// errorText maps service errors to a message for the user
func (b *Bot) errorText(lang domain.Language, err error) string {
	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return b.i18n.Get(lang, "error.rate_limited")
	case errors.Is(err, domain.ErrNoActiveView):
		return b.i18n.Get(lang, "error.no_view")
	case application.IsUserError(err):
		return b.i18n.Get(lang, "error.invalid_input")
	}
	return b.i18n.Get(lang, "error.generic")
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) int {
	msg := tgbotapi.NewMessage(chatID, truncate(text, maxMessageLength))
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	sent, err := b.api.Send(msg)
	if err != nil {
		b.log.Error("send message", "chat_id", chatID, "error", err)
		return 0
	}
	return sent.MessageID
}

func (b *Bot) editMessage(msg *tgbotapi.Message, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	b.editByID(msg.Chat.ID, msg.MessageID, text, keyboard)
}

func (b *Bot) editByID(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, truncate(text, maxMessageLength))
	edit.ParseMode = tgbotapi.ModeHTML
	edit.ReplyMarkup = &keyboard
	if _, err := b.api.Send(edit); err != nil {
		b.log.Debug("edit message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}

func (b *Bot) deleteMessage(chatID int64, messageID int) {
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, messageID)); err != nil {
		b.log.Debug("delete message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) answerCallback(callbackID, text string, alert bool) {
	callback := tgbotapi.NewCallback(callbackID, text)
	callback.ShowAlert = alert
	if _, err := b.api.Request(callback); err != nil {
		b.log.Debug("answer callback", "error", err)
	}
}

func (b *Bot) getUserID(update tgbotapi.Update) string {
	if update.Message != nil && update.Message.From != nil {
		return strconv.FormatInt(update.Message.From.ID, 10)
	}
	if update.CallbackQuery != nil && update.CallbackQuery.From != nil {
		return strconv.FormatInt(update.CallbackQuery.From.ID, 10)
	}
	return ""
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}

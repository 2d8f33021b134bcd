package telegram

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/escalopa/quran-reader/internal/domain"
)

// commandTajwid sends the tajwid guide, or a single rule: /tajwid iqlab
func (b *Bot) commandTajwid(_ context.Context, msg *tgbotapi.Message, _ string, lang domain.Language) {
	if arg := strings.TrimSpace(msg.CommandArguments()); arg != "" {
		rule, ok := domain.GetTajwidRule(arg)
		if !ok {
			b.sendMessage(msg.Chat.ID, b.i18n.Get(lang, "tajwid.unknown"))
			return
		}
		b.sendMessage(msg.Chat.ID, b.formatTajwidRule(lang, rule))
		return
	}
	b.sendMessage(msg.Chat.ID, b.formatTajwidGuide(lang))
}

func (b *Bot) formatTajwidGuide(lang domain.Language) string {
	var sb strings.Builder
	sb.WriteString(b.i18n.Get(lang, "tajwid.title"))
	sb.WriteString("\n")
	for _, rule := range domain.TajwidRules() {
		sb.WriteString("\n")
		sb.WriteString(b.formatTajwidRule(lang, rule))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(b.i18n.Get(lang, "tajwid.footer"))
	return sb.String()
}

func (b *Bot) formatTajwidRule(lang domain.Language, rule domain.TajwidRule) string {
	return fmt.Sprintf("<b>%s</b> %s\n%s\n%s: %s\n%s: <i>%s</i>",
		html.EscapeString(rule.Name), rule.NameArabic,
		html.EscapeString(rule.Description),
		b.i18n.Get(lang, "tajwid.letters"), html.EscapeString(rule.Letters),
		b.i18n.Get(lang, "tajwid.example"), html.EscapeString(rule.Example),
	)
}

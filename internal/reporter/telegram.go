package reporter

import (
	"context"
	"fmt"
	"html"
	"strings"

	"go-jobsearch-automation/internal/config"
	"go-jobsearch-automation/internal/workflow"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// telegram rejects messages above 4096 characters
const maxMessageLen = 4000

type TelegramReporter struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramReporter(cfg *config.Config) (*TelegramReporter, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram bot: %w", err)
	}

	//turn this on in case of debug
	//bot.Debug = true

	return &TelegramReporter{
		bot:    bot,
		chatID: cfg.TelegramChatID,
	}, nil
}

func (t *TelegramReporter) SendMessage(text string) error {
	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = "HTML" //use HTML for bold/italic
	_, err := t.bot.Send(msg)
	return err
}

func (t *TelegramReporter) Report(ctx context.Context, result *workflow.Result) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.SendMessage(FormatTelegram(result))
}

func (t *TelegramReporter) SendError(errReq error) error {
	text := fmt.Sprintf("⚠️ <b>Job search error</b>:\n%s", html.EscapeString(errReq.Error()))
	return t.SendMessage(text)
}

// FormatTelegram renders a run as an HTML message, truncating the job list
// so the message stays under Telegram's size limit.
func FormatTelegram(result *workflow.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔎 <b>%s</b>\n", html.EscapeString(result.Term))
	if result.Count != nil {
		fmt.Fprintf(&b, "📊 %s\n", html.EscapeString(result.Count.Label))
	}

	jobs := result.Jobs()
	if result.Report != nil {
		fmt.Fprintf(&b, "✅ %d/%d rows extracted\n", len(jobs), result.Report.Enumerated)
	}
	b.WriteString("\n")

	for i, job := range jobs {
		entry := fmt.Sprintf("🔥 <b>%s</b>\n🏢 %s\n📍 %s\n\n",
			html.EscapeString(job.Title),
			html.EscapeString(job.Company),
			html.EscapeString(job.Location),
		)
		if b.Len()+len(entry) > maxMessageLen {
			fmt.Fprintf(&b, "… and %d more", len(jobs)-i)
			break
		}
		b.WriteString(entry)
	}
	return strings.TrimRight(b.String(), "\n")
}

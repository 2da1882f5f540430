package telegram

import (
	"context"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// maxMessageLength is Telegram's limit for a text message.
const maxMessageLength = 4096

// Sender is the part of *tgbotapi.BotAPI the package uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// AdminNotifier posts moderation alerts to the moderators' chat.
// Alerts are queued so a slow Telegram API never delays a request.
type AdminNotifier struct {
	Bot    Sender
	ChatID int64
	Log    *zap.Logger
	queue  chan string
}

func NewAdminNotifier(bot Sender, chatID int64, log *zap.Logger) *AdminNotifier {
	return &AdminNotifier{
		Bot:    bot,
		ChatID: chatID,
		Log:    log,
		queue:  make(chan string, 100),
	}
}

// AlertModerators enqueues text; it drops the alert when the queue is full.
func (n *AdminNotifier) AlertModerators(_ context.Context, text string) {
	select {
	case n.queue <- text:
	default:
		n.Log.Warn("telegram alert queue full, dropping alert")
	}
}

// Run sends queued alerts until ctx is cancelled.
func (n *AdminNotifier) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case text := <-n.queue:
			msg := tgbotapi.NewMessage(n.ChatID, truncate(text, maxMessageLength))
			if _, err := n.Bot.Send(msg); err != nil {
				n.Log.Error("failed to send telegram alert", zap.Error(err))
			}
		}
	}
}

func truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	r := []rune(s)
	return string(r[:limit-1]) + "…"
}

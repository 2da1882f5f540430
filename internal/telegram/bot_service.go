// Package telegram connects the moderation workflow to the moderators' Telegram chat.
// It posts alerts about new complaints, appeals and bans, and answers
// queue commands sent in that chat.
package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// BotService owns the bot connection, the alert queue and the update loop.
type BotService struct {
	BotAPI   *tgbotapi.BotAPI
	Notifier *AdminNotifier
	Queues   QueueCounter
	ChatID   int64
	Log      *zap.Logger
}

// NewBotService creates a new BotService instance.
func NewBotService(token string, adminChatID int64, queues QueueCounter, log *zap.Logger) (*BotService, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = false
	log.Info("telegram bot authorized", zap.String("account", bot.Self.UserName))

	return &BotService{
		BotAPI:   bot,
		Notifier: NewAdminNotifier(bot, adminChatID, log),
		Queues:   queues,
		ChatID:   adminChatID,
		Log:      log,
	}, nil
}

// Run delivers alerts and serves commands until ctx is cancelled.
func (s *BotService) Run(ctx context.Context) {
	go s.Notifier.Run(ctx)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := s.BotAPI.GetUpdatesChan(u)
	defer s.BotAPI.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			HandleModerationCommand(ctx, &update, s.Queues, s.BotAPI, s.ChatID, s.Log)
		}
	}
}

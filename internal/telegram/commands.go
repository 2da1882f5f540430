package telegram

import (
	"context"
	"estatehub/backend/internal/appeal"
	"estatehub/backend/internal/complaint"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// QueueCounter reports the size of the moderation queues.
type QueueCounter interface {
	CountOpenComplaints(ctx context.Context) (int64, error)
	CountPendingAppeals(ctx context.Context) (int64, error)
}

// ServiceQueues counts queues through the complaint and appeal services.
type ServiceQueues struct {
	Complaints *complaint.Service
	Appeals    *appeal.Service
}

func (q ServiceQueues) CountOpenComplaints(ctx context.Context) (int64, error) {
	res, err := q.Complaints.GetAll(ctx, pagination.New(1, 1), string(models.ComplaintOpen))
	return res.Total, err
}

func (q ServiceQueues) CountPendingAppeals(ctx context.Context) (int64, error) {
	res, err := q.Appeals.GetAllAppeals(ctx, pagination.New(1, 1), string(models.AppealPending))
	return res.Total, err
}

const helpText = "Moderation bot commands:\n/queue - open complaints and pending appeals\n/help - this message"

// HandleModerationCommand processes /queue and /help sent in the moderators' chat.
// Commands from any other chat are ignored.
func HandleModerationCommand(ctx context.Context, update *tgbotapi.Update, q QueueCounter, bot Sender, adminChatID int64, log *zap.Logger) {
	if update.Message == nil || !update.Message.IsCommand() || update.Message.Chat.ID != adminChatID {
		return
	}

	var responseText string
	switch update.Message.Command() {
	case "queue":
		complaints, err := q.CountOpenComplaints(ctx)
		if err != nil {
			log.Error("failed to count open complaints", zap.Error(err))
			responseText = "Failed to read the moderation queue. Please try again later."
			break
		}
		appeals, err := q.CountPendingAppeals(ctx)
		if err != nil {
			log.Error("failed to count pending appeals", zap.Error(err))
			responseText = "Failed to read the moderation queue. Please try again later."
			break
		}
		responseText = fmt.Sprintf("Open complaints: %d\nPending appeals: %d", complaints, appeals)
	case "help", "start":
		responseText = helpText
	default:
		return
	}

	msg := tgbotapi.NewMessage(update.Message.Chat.ID, responseText)
	if _, err := bot.Send(msg); err != nil {
		log.Error("failed to send command reply", zap.Error(err))
	}
}

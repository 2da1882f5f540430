// Package messaging implements direct messages between users. Clients poll
// Conversation with the timestamp of the newest message they hold.
package messaging

import (
	"context"
	"estatehub/backend/internal/apperr"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/notification"
	"estatehub/backend/internal/storage"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	maxContentLength = 5000
	defaultPollLimit = 50
	maxPollLimit     = 200
)

type Service struct {
	Storage  storage.Storage
	Notifier notification.Notifier
	Log      *zap.Logger
}

func NewService(s storage.Storage, n notification.Notifier, log *zap.Logger) *Service {
	return &Service{Storage: s, Notifier: n, Log: log}
}

type SendInput struct {
	RecipientID string
	PropertyID  string
	Content     string
}

func (s *Service) Send(ctx context.Context, senderID string, in SendInput) (*models.Message, error) {
	in.Content = strings.TrimSpace(in.Content)
	switch {
	case in.RecipientID == "":
		return nil, fmt.Errorf("%w: recipientId is required", apperr.ErrInvalidInput)
	case in.RecipientID == senderID:
		return nil, fmt.Errorf("%w: you cannot message yourself", apperr.ErrInvalidInput)
	case in.Content == "":
		return nil, fmt.Errorf("%w: message content is required", apperr.ErrInvalidInput)
	case utf8.RuneCountInString(in.Content) > maxContentLength:
		return nil, fmt.Errorf("%w: message is longer than %d characters", apperr.ErrInvalidInput, maxContentLength)
	}

	if _, err := s.Storage.GetUserByID(ctx, in.RecipientID); err != nil {
		return nil, err
	}
	msg := &models.Message{SenderID: senderID, RecipientID: in.RecipientID, Content: in.Content}
	if in.PropertyID != "" {
		if _, err := s.Storage.GetPropertyByID(ctx, in.PropertyID); err != nil {
			return nil, err
		}
		msg.PropertyID = &in.PropertyID
	}
	if err := s.Storage.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		senderName := "Someone"
		if sender, err := s.Storage.GetUserByID(ctx, senderID); err == nil && sender.Name != "" {
			senderName = sender.Name
		}
		if _, err := s.Notifier.Notify(ctx, in.RecipientID, models.NotificationMessageReceived,
			map[string]string{"sender": senderName},
			map[string]string{"messageId": msg.ID, "senderId": senderID}); err != nil {
			s.Log.Warn("notification failed", zap.String("user_id", in.RecipientID), zap.Error(err))
		}
	}
	return msg, nil
}

// Conversation returns messages between userID and otherID newer than since, oldest first.
func (s *Service) Conversation(ctx context.Context, userID, otherID string, since time.Time, limit int) ([]models.Message, error) {
	if otherID == "" || otherID == userID {
		return nil, fmt.Errorf("%w: invalid conversation partner", apperr.ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultPollLimit
	}
	limit = min(limit, maxPollLimit)
	return s.Storage.ListConversation(ctx, userID, otherID, since, limit)
}

// MarkRead marks a message read; only its recipient may do so.
func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	return s.Storage.MarkMessageRead(ctx, id, userID)
}

// Inbox returns the latest message of each conversation.
func (s *Service) Inbox(ctx context.Context, userID string) ([]models.Message, error) {
	return s.Storage.ListInbox(ctx, userID)
}

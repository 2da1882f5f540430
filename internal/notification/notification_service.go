// Package notification stores per-user notifications and pushes them to live subscribers.
package notification

import (
	"context"
	"encoding/json"
	"estatehub/backend/internal/localization"
	"estatehub/backend/internal/models"
	"estatehub/backend/internal/pagination"
	"estatehub/backend/internal/storage"
	"strings"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// Notifier is what other services use to tell a user that something happened.
type Notifier interface {
	Notify(ctx context.Context, userID, kind string, vars map[string]string, data any) (*models.Notification, error)
}

// Alerter forwards moderation events to the moderators' channel.
// Implementations are best effort and never fail the caller.
type Alerter interface {
	AlertModerators(ctx context.Context, text string)
}

// NopAlerter is used when no moderator channel is configured.
type NopAlerter struct{}

func (NopAlerter) AlertModerators(context.Context, string) {}

type Service struct {
	Storage   storage.Storage
	Localizer *localization.Localizer
	Log       *zap.Logger
}

func NewService(s storage.Storage, l *localization.Localizer, log *zap.Logger) *Service {
	return &Service{Storage: s, Localizer: l, Log: log}
}

// Notify renders the "<kind>.title" and "<kind>.message" texts in the recipient's
// language, stores the row and pushes it to live subscribers.
// The unread counter and the push are best effort.
func (s *Service) Notify(ctx context.Context, userID, kind string, vars map[string]string, data any) (*models.Notification, error) {
	user, err := s.Storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	lang := user.Language
	if lang == "" {
		lang = localization.DefaultLanguage
	}

	n := &models.Notification{
		UserID:  userID,
		Type:    kind,
		Title:   strings.TrimSpace(s.Localizer.Format(lang, kind+".title", vars)),
		Message: strings.TrimSpace(s.Localizer.Format(lang, kind+".message", vars)),
	}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		n.Data = datatypes.JSON(raw)
	}

	if err := s.Storage.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	if err := s.Storage.IncrCachedUnread(ctx, userID); err != nil {
		s.Log.Warn("failed to bump unread counter", zap.String("user_id", userID), zap.Error(err))
	}
	if err := s.Storage.PublishNotification(ctx, n); err != nil {
		s.Log.Warn("failed to publish notification", zap.String("user_id", userID), zap.Error(err))
	}
	return n, nil
}

func (s *Service) List(ctx context.Context, userID string, page pagination.Page, unreadOnly bool) (pagination.Result[models.Notification], error) {
	return s.Storage.ListNotifications(ctx, userID, unreadOnly, page)
}

func (s *Service) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.Storage.MarkNotificationRead(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// MarkAllRead returns the number of notifications that were unread.
func (s *Service) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	n, err := s.Storage.MarkAllNotificationsRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.Storage.SetCachedUnread(ctx, userID, 0); err != nil {
		s.Log.Warn("failed to reset unread counter", zap.String("user_id", userID), zap.Error(err))
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, id, userID string) error {
	if err := s.Storage.DeleteNotification(ctx, id, userID); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// UnreadCount serves the Redis counter when present and recounts otherwise.
func (s *Service) UnreadCount(ctx context.Context, userID string) (int64, error) {
	n, ok, err := s.Storage.GetCachedUnread(ctx, userID)
	if err != nil {
		s.Log.Warn("unread counter unavailable", zap.String("user_id", userID), zap.Error(err))
	}
	if ok {
		return n, nil
	}

	n, err = s.Storage.CountUnreadNotifications(ctx, userID)
	if err != nil {
		return 0, err
	}
	if err := s.Storage.SetCachedUnread(ctx, userID, n); err != nil {
		s.Log.Warn("failed to cache unread counter", zap.String("user_id", userID), zap.Error(err))
	}
	return n, nil
}

func (s *Service) invalidate(ctx context.Context, userID string) {
	if err := s.Storage.InvalidateCachedUnread(ctx, userID); err != nil {
		s.Log.Warn("failed to invalidate unread counter", zap.String("user_id", userID), zap.Error(err))
	}
}

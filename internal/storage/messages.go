package storage

import (
	"context"
	"estatehub/backend/internal/models"
	"time"

	"gorm.io/gorm"
)

func (s *Service) CreateMessage(ctx context.Context, m *models.Message) error {
	return s.DB.WithContext(ctx).Create(m).Error
}

func (s *Service) GetMessageByID(ctx context.Context, id string) (*models.Message, error) {
	var m models.Message
	if err := s.DB.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "message")
	}
	return &m, nil
}

// ListConversation returns messages exchanged between two users after since,
// oldest first, so polling clients can append them.
func (s *Service) ListConversation(ctx context.Context, userA, userB string, since time.Time, limit int) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)", userA, userB, userB, userA).
		Where("created_at > ?", since).
		Order("created_at ASC").
		Limit(limit).
		Find(&msgs).Error
	return msgs, err
}

func (s *Service) MarkMessageRead(ctx context.Context, id, recipientID string) error {
	res := s.DB.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, "message")
	}
	return nil
}

// ListInbox returns the latest message of every conversation the user takes part in.
func (s *Service) ListInbox(ctx context.Context, userID string) ([]models.Message, error) {
	rawSQL := `
        SELECT *
        FROM (
            SELECT DISTINCT ON (LEAST(sender_id, recipient_id), GREATEST(sender_id, recipient_id))
                *
            FROM messages
            WHERE sender_id = ? OR recipient_id = ?
            ORDER BY LEAST(sender_id, recipient_id), GREATEST(sender_id, recipient_id), created_at DESC
        ) AS latest
        ORDER BY created_at DESC
    `
	var msgs []models.Message
	err := s.DB.WithContext(ctx).Raw(rawSQL, userID, userID).Scan(&msgs).Error
	return msgs, err
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is one entry of a direct conversation between two users.
// Clients poll for new rows; there is no push transport for messages.
type Message struct {
	ID          string    `gorm:"primaryKey;type:uuid" json:"id"`
	SenderID    string    `gorm:"type:uuid;not null;index:idx_msg_pair" json:"senderId"`
	RecipientID string    `gorm:"type:uuid;not null;index:idx_msg_pair" json:"recipientId"`
	PropertyID  *string   `gorm:"type:uuid" json:"propertyId,omitempty"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	IsRead      bool      `gorm:"not null;default:false" json:"isRead"`
	CreatedAt   time.Time `gorm:"index" json:"createdAt"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	NotificationComplaintFiled    = "complaint_filed"
	NotificationComplaintUpdated  = "complaint_updated"
	NotificationAppealResolved    = "appeal_resolved"
	NotificationPropertyStatus    = "property_status"
	NotificationBookingRequested  = "booking_requested"
	NotificationBookingUpdated    = "booking_updated"
	NotificationMessageReceived   = "message_received"
	NotificationAccountRestricted = "account_restricted"
)

// Notification is created as a side effect of other actions and is
// read or deleted only by the user it belongs to.
type Notification struct {
	ID        string         `gorm:"primaryKey;type:uuid" json:"id"`
	UserID    string         `gorm:"type:uuid;not null;index" json:"userId"`
	Type      string         `gorm:"type:text;not null" json:"type"`
	Title     string         `gorm:"not null" json:"title"`
	Message   string         `gorm:"type:text" json:"message"`
	IsRead    bool           `gorm:"not null;default:false;index" json:"isRead"`
	Data      datatypes.JSON `json:"data,omitempty"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	return
}

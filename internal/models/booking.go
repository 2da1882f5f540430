package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID         string        `gorm:"primaryKey;type:uuid" json:"id"`
	PropertyID string        `gorm:"type:uuid;not null;index" json:"propertyId"`
	GuestID    string        `gorm:"type:uuid;not null;index" json:"guestId"`
	StartDate  time.Time     `gorm:"not null" json:"startDate"`
	EndDate    time.Time     `gorm:"not null" json:"endDate"`
	Status     BookingStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	Note       string        `gorm:"type:text" json:"note,omitempty"`
	CreatedAt  time.Time     `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
	return
}

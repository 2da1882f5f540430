package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	PropertyID string    `gorm:"type:uuid;not null;uniqueIndex:idx_review_author" json:"propertyId"`
	ReviewerID string    `gorm:"type:uuid;not null;uniqueIndex:idx_review_author" json:"reviewerId"`
	Rating     int       `gorm:"not null" json:"rating"`
	Comment    string    `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Property is a listing published by an owner.
// Status is the only field moderation mutates.
type Property struct {
	ID           string         `gorm:"primaryKey;type:uuid" json:"id"`
	OwnerID      string         `gorm:"type:uuid;not null;index" json:"ownerId"`
	Title        string         `gorm:"not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"not null" json:"price"`
	Location     string         `gorm:"index" json:"location"`
	PropertyType string         `json:"propertyType,omitempty"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	Images       pq.StringArray `gorm:"type:text[]" json:"images"`
	Status       PropertyStatus `gorm:"type:text;not null;index;default:'Pending Verification'" json:"status"`
	StatusReason string         `gorm:"type:text" json:"statusReason,omitempty"`
	CreatedAt    time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

func (p *Property) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Status == "" {
		p.Status = PropertyPendingVerification
	}
	return
}

// PropertySummary is the projection of a property embedded in moderation rows.
type PropertySummary struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Location string         `json:"location"`
	Status   PropertyStatus `json:"status"`
}

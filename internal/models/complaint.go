package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	TargetUser     = "user"
	TargetProperty = "property"
)

// Complaint is a report filed by a user against another user or a property.
type Complaint struct {
	ID            string          `gorm:"primaryKey;type:uuid" json:"id"`
	ComplainantID string          `gorm:"type:uuid;not null;index" json:"complainantId"`
	TargetID      string          `gorm:"type:uuid;not null;index:idx_complaint_target" json:"targetId"`
	TargetType    string          `gorm:"type:text;not null;index:idx_complaint_target" json:"targetType"`
	Type          string          `gorm:"type:text;not null" json:"type"`
	Description   string          `gorm:"type:text;not null" json:"description"`
	Evidence      pq.StringArray  `gorm:"type:text[]" json:"evidence"`
	Status        ComplaintStatus `gorm:"type:text;not null;index;default:'open'" json:"status"`
	Resolution    string          `gorm:"type:text" json:"resolution,omitempty"`
	AdminNotes    string          `gorm:"type:text" json:"adminNotes,omitempty"`
	// Severity is the weight of Type at filing time.
	Severity  int       `gorm:"not null;default:0" json:"severity"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Complaint) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = ComplaintOpen
	}
	return
}

// ComplaintView is a complaint joined with the complainant and its target for display.
type ComplaintView struct {
	Complaint
	Complainant    *UserSummary     `gorm:"-" json:"complainant,omitempty"`
	TargetUser     *UserSummary     `gorm:"-" json:"targetUser,omitempty"`
	TargetProperty *PropertySummary `gorm:"-" json:"targetProperty,omitempty"`
}

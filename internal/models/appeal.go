package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Appeal is a property owner's rebuttal to a complaint against their property.
// ComplaintID is unique: a complaint can be appealed once.
type Appeal struct {
	ID              string         `gorm:"primaryKey;type:uuid" json:"id"`
	ComplaintID     string         `gorm:"type:uuid;not null;uniqueIndex" json:"complaintId"`
	PropertyID      string         `gorm:"type:uuid;not null;index" json:"propertyId"`
	PropertyOwnerID string         `gorm:"type:uuid;not null;index" json:"propertyOwnerId"`
	ComplainantID   string         `gorm:"type:uuid;not null;index" json:"complainantId"`
	Message         string         `gorm:"type:text;not null" json:"message"`
	EvidencePhotos  pq.StringArray `gorm:"type:text[]" json:"evidencePhotos"`
	Status          AppealStatus   `gorm:"type:text;not null;index;default:'pending'" json:"status"`
	AdminResponse   string         `gorm:"type:text" json:"adminResponse,omitempty"`
	ResolvedBy      *string        `gorm:"type:uuid" json:"resolvedBy,omitempty"`
	ResolvedAt      *time.Time     `json:"resolvedAt,omitempty"`
	CreatedAt       time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func (a *Appeal) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.Status == "" {
		a.Status = AppealPending
	}
	return
}

// AppealView is an appeal joined with its property, complaint and both parties.
type AppealView struct {
	Appeal
	Property    *PropertySummary `gorm:"-" json:"property,omitempty"`
	Complaint   *Complaint       `gorm:"-" json:"complaint,omitempty"`
	Owner       *UserSummary     `gorm:"-" json:"owner,omitempty"`
	Complainant *UserSummary     `gorm:"-" json:"complainant,omitempty"`
}

// InvolvesUser reports whether userID is the owner or the complainant of the appeal.
func (a *Appeal) InvolvesUser(userID string) bool {
	return userID != "" && (a.PropertyOwnerID == userID || a.ComplainantID == userID)
}

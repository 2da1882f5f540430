package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account in the marketplace.
// The same account can list properties, book them and file complaints.
type User struct {
	ID           string `gorm:"primaryKey;type:uuid" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Name         string `json:"name"`
	Phone        string `json:"phone,omitempty"`
	Role         string `gorm:"type:text;not null;default:'user'" json:"role"`
	// Language selects the catalogue used for the user's notifications.
	Language string `gorm:"type:text;not null;default:'en'" json:"language"`

	ReputationScore int   `gorm:"not null;default:1000" json:"reputationScore"`
	IsBlocked       bool  `gorm:"not null;default:false" json:"isBlocked"`
	BlockEndTime    int64 `json:"blockEndTime,omitempty"`
	BlockLevel      int   `json:"-"`
	LastBanDate     int64 `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate is a GORM hook that assigns a UUID when ID is empty.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BlockActive reports whether the block is still in force at now.
// A block without an end time is permanent.
func (u *User) BlockActive(now time.Time) bool {
	if !u.IsBlocked {
		return false
	}
	return u.BlockEndTime == 0 || u.BlockEndTime > now.Unix()
}

// UserSummary is the public projection of a user embedded in joined responses.
type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User roles.
const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

// User represents a registered account on the portal.
type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex;size:150;not null"`
	Username      string    `json:"username" gorm:"uniqueIndex;size:15;not null"`
	PasswordHash  string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	Role          string    `json:"role" gorm:"size:10;not null;default:'client'"`
	Phone         string    `json:"phone,omitempty" gorm:"size:15"`
	Description   string    `json:"description,omitempty" gorm:"size:100"`
	RecoveryToken string    `json:"-" gorm:"size:512"` // Single-use password reset token
	RegisteredAt  time.Time `json:"registered_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// Package entity defines the domain entities for the auth feature.
package entity

import (
	"crypto/subtle"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered user together with the scoring credential they stored.
type User struct {
	// ID is generated on insert.
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	// Email must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash, never the plaintext.
	Password string `gorm:"size:255;not null"`

	FullName *string `gorm:"size:255"`

	IsActive    bool `gorm:"not null;default:true"`
	IsSuperuser bool `gorm:"not null;default:false"`
	IsVerified  bool `gorm:"not null;default:false"`

	// APIKey is the user's Gemini key. Nil until the user stores one.
	APIKey *string `gorm:"size:255"`

	// Language is the language model feedback is written in. May be empty.
	Language string `gorm:"size:64"`

	VerificationCode *string `gorm:"size:6;index"`
	CodeExpiresAt    *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a new UUID when none is set.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// CodeMatches reports whether code is the pending verification code and has not expired at now.
func (u *User) CodeMatches(code string, now time.Time) bool {
	if u.VerificationCode == nil || u.CodeExpiresAt == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*u.VerificationCode), []byte(code)) == 1 && now.Before(*u.CodeExpiresAt)
}

// UserPatch lists the administrator-editable fields. Nil fields are left unchanged.
type UserPatch struct {
	FullName    *string
	IsActive    *bool
	IsSuperuser *bool
	IsVerified  *bool
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.FullName == nil && p.IsActive == nil && p.IsSuperuser == nil && p.IsVerified == nil
}

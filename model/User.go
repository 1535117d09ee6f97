package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name     string    `gorm:"size:50;not null"`
	Email    string    `gorm:"size:255;not null;uniqueIndex"`
	Phone    string    `gorm:"size:20;uniqueIndex"`
	Password string    `gorm:"type:text;not null"` // bcrypt hash
	Role     Role      `gorm:"size:50;not null"`
	FcmToken string    `gorm:"type:text"`

	// Pending password-reset token. One active token per user; nil when none.
	ResetToken       *string `gorm:"type:text;uniqueIndex"`
	ResetTokenExpiry *time.Time

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (u *User) BeforeCreate(_ *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return
}

// HasActiveResetToken reports whether a reset token is set and not yet expired.
func (u *User) HasActiveResetToken(now time.Time) bool {
	return u.ResetToken != nil && u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now)
}

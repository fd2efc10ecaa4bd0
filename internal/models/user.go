package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. Email doubles as the login name and
// is unique. Accounts start unverified and are flipped once by the email
// confirmation flow.
type User struct {
	ID            uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	Email         string         `gorm:"size:50;uniqueIndex;not null" json:"email"`
	FirstName     string         `gorm:"size:30;not null" json:"first_name"`
	LastName      string         `gorm:"size:30;not null" json:"last_name"`
	PasswordHash  string         `gorm:"size:150;not null" json:"-"`
	EmailVerified bool           `gorm:"default:false" json:"email_verified"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

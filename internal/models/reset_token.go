package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResetToken records a password-reset token issuance. A token is single-use:
// once Used is set the token is permanently invalid even if its signature
// would still verify.
type ResetToken struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Token     string    `gorm:"size:512;uniqueIndex;not null" json:"-"`
	Used      bool      `gorm:"default:false" json:"used"`
	CreatedAt time.Time `json:"created_at"`
}

func (t *ResetToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

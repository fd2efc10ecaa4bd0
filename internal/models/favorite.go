package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FavoriteType is the closed set of favorite kinds.
type FavoriteType string

const (
	FavoriteRecipe FavoriteType = "Recette pertinente"
	FavoriteTip    FavoriteType = "Astuce de cuisine"
)

func (t FavoriteType) IsValid() bool {
	return t == FavoriteRecipe || t == FavoriteTip
}

// Favorite is a saved recipe or cooking tip. Favorites are created and
// deleted by user action, never mutated.
type Favorite struct {
	ID        uuid.UUID    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Type      FavoriteType `gorm:"size:30;not null" json:"type"`
	Title     string       `gorm:"type:text;not null" json:"title"`
	Content   string       `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

package database

import (
	"gorm.io/gorm"

	"github.com/chefbot/backend/internal/models"
)

// Migrate brings the schema up to date for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Conversation{},
		&models.Personalization{},
		&models.ResetToken{},
		&models.Favorite{},
	)
}

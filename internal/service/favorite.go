package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/models"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrInvalidFavorite  = errors.New("invalid favorite type")
)

// FavoriteService owns saved recipes and cooking tips.
type FavoriteService struct {
	db *gorm.DB
}

func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{db: db}
}

func (s *FavoriteService) List(userID uuid.UUID) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.Where("user_id = ?", userID).Find(&favorites).Error; err != nil {
		return nil, err
	}
	return favorites, nil
}

func (s *FavoriteService) Add(userID uuid.UUID, favoriteType models.FavoriteType, title, content string) (*models.Favorite, error) {
	if !favoriteType.IsValid() {
		return nil, ErrInvalidFavorite
	}

	favorite := models.Favorite{
		UserID:  userID,
		Type:    favoriteType,
		Title:   title,
		Content: content,
	}

	if err := database.WithRetry(func() error {
		return s.db.Create(&favorite).Error
	}); err != nil {
		return nil, err
	}

	return &favorite, nil
}

func (s *FavoriteService) Delete(userID, favoriteID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", favoriteID, userID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

package service

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/models"
)

// BaselineSystemPrompt is the universal instruction used when a user has no
// personalization or everything is still at its default.
const BaselineSystemPrompt = "Tu es un expert en cuisine. Tu ne réponds qu'aux questions sur la cuisine."

const personalizedPromptHeader = "Tu es un expert en cuisine. Tu ne réponds qu'aux questions sur la cuisine en tenant compte des préférences suivantes:\n"

var ErrInvalidPreference = errors.New("invalid preference value")

// PersonalizationService owns the per-user cooking preferences and the
// system prompt assembled from them.
type PersonalizationService struct {
	db *gorm.DB
}

func NewPersonalizationService(db *gorm.DB) *PersonalizationService {
	return &PersonalizationService{db: db}
}

// GetOrCreate returns the user's personalization, creating a default record
// on first access.
func (s *PersonalizationService) GetOrCreate(userID uuid.UUID) (*models.Personalization, error) {
	var personalization models.Personalization
	err := s.db.Where("user_id = ?", userID).First(&personalization).Error
	if err == nil {
		return &personalization, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	personalization = models.Personalization{
		UserID:           userID,
		Diet:             models.DietNone,
		FoodGoal:         models.FoodGoalNone,
		KitchenEquipment: models.DefaultKitchenEquipment,
	}
	if err := database.WithRetry(func() error {
		return s.db.Create(&personalization).Error
	}); err != nil {
		return nil, err
	}

	return &personalization, nil
}

// Save fully overwrites the user's personalization with the given values.
// Fields are replaced, never merged; enum values must already be validated
// at the boundary.
func (s *PersonalizationService) Save(userID uuid.UUID, update *models.Personalization) (*models.Personalization, error) {
	if !update.Diet.IsValid() || !update.FoodGoal.IsValid() {
		return nil, ErrInvalidPreference
	}

	personalization, err := s.GetOrCreate(userID)
	if err != nil {
		return nil, err
	}

	personalization.Allergies = update.Allergies
	personalization.BannedIngredients = update.BannedIngredients
	personalization.Diet = update.Diet
	personalization.FoodGoal = update.FoodGoal
	personalization.KitchenEquipment = update.KitchenEquipment

	if err := database.WithRetry(func() error {
		return s.db.Save(personalization).Error
	}); err != nil {
		return nil, err
	}

	return personalization, nil
}

// BuildSystemPrompt assembles the system instruction for a user: the
// baseline plus one line per populated, non-default preference, in fixed
// order. A missing user or record degrades to the baseline instead of
// failing the turn.
func (s *PersonalizationService) BuildSystemPrompt(userID uuid.UUID) string {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		log.Printf("user %s not found while building system prompt: %v", userID, err)
		return BaselineSystemPrompt
	}

	var personalization models.Personalization
	if err := s.db.Where("user_id = ?", user.ID).First(&personalization).Error; err != nil {
		return BaselineSystemPrompt
	}

	var b strings.Builder

	if personalization.Diet != models.DietUnset && personalization.Diet != models.DietNone {
		b.WriteString("- Régime alimentaire: " + string(personalization.Diet) + "\n")
	}
	if personalization.FoodGoal != models.FoodGoalUnset && personalization.FoodGoal != models.FoodGoalNone {
		b.WriteString("- Objectif alimentaire: " + string(personalization.FoodGoal) + "\n")
	}
	if list := formatList(personalization.Allergies); list != "" {
		b.WriteString("- Allergies: " + list + "\n")
	}
	if list := formatList(personalization.BannedIngredients); list != "" {
		b.WriteString("- Ingrédients à éviter: " + list + "\n")
	}
	if personalization.KitchenEquipment != models.DefaultKitchenEquipment {
		if list := formatList(personalization.KitchenEquipment); list != "" {
			b.WriteString("- Équipement disponible: " + list + "\n")
		}
	}

	if b.Len() == 0 {
		return BaselineSystemPrompt
	}

	return personalizedPromptHeader + b.String()
}

// formatList renders a JSON-array column as a comma-separated list. Plain
// strings pass through unchanged; empty lists render as empty.
func formatList(value string) string {
	if value == "" {
		return ""
	}
	var items []string
	if err := json.Unmarshal([]byte(value), &items); err == nil {
		return strings.Join(items, ", ")
	}
	return value
}

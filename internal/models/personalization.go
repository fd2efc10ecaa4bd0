package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Diet is the closed set of dietary regimes a user can pick. The zero value
// means the field was never set, which is distinct from DietNone ("no regime
// chosen").
type Diet string

const (
	DietUnset         Diet = ""
	DietNone          Diet = "Aucun régime"
	DietVegetarian    Diet = "Végétarien"
	DietVegan         Diet = "Végan"
	DietGlutenFree    Diet = "Sans gluten"
	DietHalal         Diet = "Halal"
	DietKosher        Diet = "Casher"
	DietKeto          Diet = "Keto"
	DietPaleo         Diet = "Paléo"
	DietMediterranean Diet = "Méditerranéen"
)

// IsValid reports whether d is one of the known diets. Unset is not a valid
// boundary value; clients must send an explicit choice.
func (d Diet) IsValid() bool {
	switch d {
	case DietNone, DietVegetarian, DietVegan, DietGlutenFree,
		DietHalal, DietKosher, DietKeto, DietPaleo, DietMediterranean:
		return true
	}
	return false
}

// FoodGoal is the closed set of nutrition goals.
type FoodGoal string

const (
	FoodGoalUnset       FoodGoal = ""
	FoodGoalNone        FoodGoal = "Aucun objectif"
	FoodGoalWeightLoss  FoodGoal = "Perte de poids"
	FoodGoalMuscleGain  FoodGoal = "Prise de muscle"
	FoodGoalMaintenance FoodGoal = "Maintien du poids"
	FoodGoalDigestion   FoodGoal = "Amélioration de la digestion"
	FoodGoalHeartHealth FoodGoal = "Santé cardiaque"
	FoodGoalEnergy      FoodGoal = "Énergie et performance"
)

func (g FoodGoal) IsValid() bool {
	switch g {
	case FoodGoalNone, FoodGoalWeightLoss, FoodGoalMuscleGain,
		FoodGoalMaintenance, FoodGoalDigestion, FoodGoalHeartHealth, FoodGoalEnergy:
		return true
	}
	return false
}

// DefaultKitchenEquipment is the starter equipment list assigned when a
// personalization record is created lazily.
const DefaultKitchenEquipment = `["Plaque de cuisson", "Poêle / Sauteuse", "Casserole / Cocotte"]`

// Personalization holds a user's cooking preferences, one-to-one with User.
// Allergies, BannedIngredients and KitchenEquipment are JSON-array strings,
// mirroring the conversation blob convention. Saves fully overwrite the
// record; fields are never merged.
type Personalization struct {
	ID                uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Allergies         string    `gorm:"size:200;default:''" json:"allergies"`
	BannedIngredients string    `gorm:"size:80;default:''" json:"banned_ingredients"`
	Diet              Diet      `gorm:"size:30;default:'Aucun régime'" json:"diet"`
	FoodGoal          FoodGoal  `gorm:"size:40;default:'Aucun objectif'" json:"food_goal"`
	KitchenEquipment  string    `gorm:"size:100" json:"kitchen_equipment"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *Personalization) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/chefbot/backend/internal/models"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Password  string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ChangePasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type UpdateNamesRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type UpdatePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

type ProfileResponse struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type CreateConversationRequest struct {
	Title string `json:"title"`
}

type ConversationSummary struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}

type ConversationResponse struct {
	ID        uuid.UUID        `json:"id"`
	Title     string           `json:"title"`
	Messages  []models.Message `json:"messages"`
	CreatedAt time.Time        `json:"created_at"`
}

type AppendMessageRequest struct {
	Message     string `json:"message" binding:"required"`
	BotResponse string `json:"bot_response"`
}

type PersonalizationRequest struct {
	Allergies         []string        `json:"allergies"`
	BannedIngredients []string        `json:"banned_ingredients"`
	Diet              models.Diet     `json:"diet" binding:"required"`
	FoodGoal          models.FoodGoal `json:"food_goal" binding:"required"`
	KitchenEquipment  []string        `json:"kitchen_equipment"`
}

type PersonalizationResponse struct {
	Allergies         []string        `json:"allergies"`
	BannedIngredients []string        `json:"banned_ingredients"`
	Diet              models.Diet     `json:"diet"`
	FoodGoal          models.FoodGoal `json:"food_goal"`
	KitchenEquipment  []string        `json:"kitchen_equipment"`
}

type AddFavoriteRequest struct {
	Type    models.FavoriteType `json:"type" binding:"required"`
	Title   string              `json:"title" binding:"required"`
	Content string              `json:"content" binding:"required"`
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

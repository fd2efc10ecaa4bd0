package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chefbot/backend/internal/middleware"
	"github.com/chefbot/backend/internal/models"
	"github.com/chefbot/backend/internal/service"
)

// PersonalizationHandler serves the per-user cooking preference endpoints.
type PersonalizationHandler struct {
	personalizationService *service.PersonalizationService
}

func NewPersonalizationHandler(personalizationService *service.PersonalizationService) *PersonalizationHandler {
	return &PersonalizationHandler{personalizationService: personalizationService}
}

func (h *PersonalizationHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	personalization, err := h.personalizationService.GetOrCreate(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les préférences."})
		return
	}

	c.JSON(http.StatusOK, toPersonalizationResponse(personalization))
}

// Update fully overwrites the stored preferences.
func (h *PersonalizationHandler) Update(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req PersonalizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	update := &models.Personalization{
		Allergies:         encodeList(req.Allergies),
		BannedIngredients: encodeList(req.BannedIngredients),
		Diet:              req.Diet,
		FoodGoal:          req.FoodGoal,
		KitchenEquipment:  encodeList(req.KitchenEquipment),
	}

	personalization, err := h.personalizationService.Save(userID, update)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPreference) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Valeur de préférence invalide."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'enregistrer les préférences."})
		return
	}

	c.JSON(http.StatusOK, toPersonalizationResponse(personalization))
}

func toPersonalizationResponse(p *models.Personalization) PersonalizationResponse {
	return PersonalizationResponse{
		Allergies:         decodeList(p.Allergies),
		BannedIngredients: decodeList(p.BannedIngredients),
		Diet:              p.Diet,
		FoodGoal:          p.FoodGoal,
		KitchenEquipment:  decodeList(p.KitchenEquipment),
	}
}

func encodeList(items []string) string {
	if len(items) == 0 {
		return ""
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(encoded)
}

// decodeList renders a JSON-array column back into a slice. Legacy plain
// strings come back as a single-element list.
func decodeList(value string) []string {
	if value == "" {
		return []string{}
	}
	var items []string
	if err := json.Unmarshal([]byte(value), &items); err != nil {
		return []string{value}
	}
	return items
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chefbot/backend/internal/middleware"
	"github.com/chefbot/backend/internal/service"
)

// FavoriteHandler serves saved recipes and cooking tips.
type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	favorites, err := h.favoriteService.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les favoris."})
		return
	}

	c.JSON(http.StatusOK, favorites)
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	favorite, err := h.favoriteService.Add(userID, req.Type, req.Title, req.Content)
	if err != nil {
		if errors.Is(err, service.ErrInvalidFavorite) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Type de favori invalide."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'ajouter le favori."})
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

func (h *FavoriteHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	favoriteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de favori invalide."})
		return
	}

	if err := h.favoriteService.Delete(userID, favoriteID); err != nil {
		if errors.Is(err, service.ErrFavoriteNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Favori introuvable."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de supprimer le favori."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Favori supprimé."})
}

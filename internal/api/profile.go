package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chefbot/backend/internal/middleware"
	"github.com/chefbot/backend/internal/service"
)

// ProfileHandler serves the authenticated account endpoints.
type ProfileHandler struct {
	authService *service.AuthService
}

func NewProfileHandler(authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.authService.GetUserByID(userID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable."})
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	})
}

func (h *ProfileHandler) UpdateNames(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdateNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	if err := h.authService.UpdateNames(userID, req.FirstName, req.LastName); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de mettre à jour le profil."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vos informations ont été mises à jour."})
}

func (h *ProfileHandler) UpdatePassword(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, service.ErrWrongPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Mot de passe actuel incorrect."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de changer le mot de passe."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe modifié."})
}

package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chefbot/backend/internal/service"
)

// AuthHandler serves the account lifecycle endpoints.
type AuthHandler struct {
	authService *service.AuthService
	frontendURL string
}

func NewAuthHandler(authService *service.AuthService, frontendURL string) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		frontendURL: frontendURL,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	_, err := h.authService.Register(req.Email, req.FirstName, req.LastName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			c.JSON(http.StatusOK, gin.H{"message": "Un compte existe déjà avec cette adresse e-mail."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer le compte."})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Compte créé. Un e-mail de confirmation vous a été envoyé."})
}

// ConfirmEmail verifies the token from the emailed link and redirects to the
// frontend login page. An already-verified account redirects the same way.
func (h *AuthHandler) ConfirmEmail(c *gin.Context) {
	token := c.Param("token")

	_, err := h.authService.ConfirmEmail(token)
	if err != nil && !errors.Is(err, service.ErrAlreadyVerified) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Lien de confirmation invalide ou expiré."})
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/login", h.frontendURL))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrEmailNotVerified) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Veuillez d'abord confirmer votre adresse e-mail. Vérifiez votre boîte de réception."})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Identifiants invalides."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// ResetPassword starts the reset flow. The answer does not reveal whether the
// address exists.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	if err := h.authService.RequestPasswordReset(req.Email); err != nil {
		if !errors.Is(err, service.ErrUserNotFound) && !errors.Is(err, service.ErrEmailNotVerified) {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'envoyer l'e-mail de réinitialisation."})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Si un compte existe avec cette adresse, un e-mail de réinitialisation a été envoyé."})
}

// ChangePassword consumes an emailed reset token and sets the new password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrTokenAlreadyUsed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Ce lien a déjà été utilisé."})
		case errors.Is(err, service.ErrInvalidToken), errors.Is(err, service.ErrTokenExpired):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Lien de réinitialisation invalide ou expiré."})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de réinitialiser le mot de passe."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe réinitialisé. Vous pouvez maintenant vous connecter."})
}

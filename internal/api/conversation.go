package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chefbot/backend/internal/middleware"
	"github.com/chefbot/backend/internal/service"
)

// ConversationHandler serves conversation CRUD and message appends.
type ConversationHandler struct {
	conversationService *service.ConversationService
}

func NewConversationHandler(conversationService *service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conversations, err := h.conversationService.List(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger les conversations."})
		return
	}

	summaries := make([]ConversationSummary, 0, len(conversations))
	for _, conv := range conversations {
		summaries = append(summaries, ConversationSummary{
			ID:        conv.ID,
			Title:     conv.Title,
			CreatedAt: conv.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, summaries)
}

func (h *ConversationHandler) Create(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Body is optional; a missing title falls back to the default.
	var req CreateConversationRequest
	_ = c.ShouldBindJSON(&req)

	conversation, err := h.conversationService.Create(userID, req.Title)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de créer la conversation."})
		return
	}

	c.JSON(http.StatusCreated, ConversationSummary{
		ID:        conversation.ID,
		Title:     conversation.Title,
		CreatedAt: conversation.CreatedAt,
	})
}

func (h *ConversationHandler) Get(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de conversation invalide."})
		return
	}

	conversation, err := h.conversationService.Get(userID, conversationID)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation introuvable."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de charger la conversation."})
		return
	}

	messages, err := conversation.DecodeMessages()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de lire les messages."})
		return
	}

	c.JSON(http.StatusOK, ConversationResponse{
		ID:        conversation.ID,
		Title:     conversation.Title,
		Messages:  messages,
		CreatedAt: conversation.CreatedAt,
	})
}

func (h *ConversationHandler) Delete(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de conversation invalide."})
		return
	}

	if err := h.conversationService.Delete(userID, conversationID); err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation introuvable."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible de supprimer la conversation."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation supprimée."})
}

func (h *ConversationHandler) AppendMessage(c *gin.Context) {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conversationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de conversation invalide."})
		return
	}

	var req AppendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide."})
		return
	}

	if err := h.conversationService.AppendMessage(userID, conversationID, req.Message, req.BotResponse); err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation introuvable."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Impossible d'enregistrer le message."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Message enregistré."})
}

package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/chefbot/backend/internal/service"
)

// ChatHandler serves one chatbot turn per request.
type ChatHandler struct {
	chatService *service.ChatService
}

func NewChatHandler(chatService *service.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

func (h *ChatHandler) Chat(c *gin.Context) {
	conversationID, err := uuid.Parse(c.Param("conversation_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de conversation invalide."})
		return
	}

	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun message fourni."})
		return
	}

	reply, err := h.chatService.HandleTurn(c.Request.Context(), conversationID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun message fourni."})
		case errors.Is(err, service.ErrConversationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Conversation introuvable."})
		default:
			log.Printf("chat turn failed for conversation %s: %v", conversationID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Le chef est momentanément indisponible. Réessayez dans un instant."})
		}
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Reply: reply})
}

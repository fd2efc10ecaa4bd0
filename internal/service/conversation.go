package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/models"
)

var ErrConversationNotFound = errors.New("conversation not found")

// DefaultConversationTitle is assigned at creation until the first user
// message supplies a real one.
const DefaultConversationTitle = "Nouvelle Conversation"

// ConversationService owns conversation records and their message blobs.
type ConversationService struct {
	db *gorm.DB
}

func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{db: db}
}

// List returns the user's conversations, newest first.
func (s *ConversationService) List(userID uuid.UUID) ([]models.Conversation, error) {
	var conversations []models.Conversation
	if err := s.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, err
	}
	return conversations, nil
}

// Create opens a new empty conversation.
func (s *ConversationService) Create(userID uuid.UUID, title string) (*models.Conversation, error) {
	if title == "" {
		title = DefaultConversationTitle
	}

	conversation := models.Conversation{
		UserID:   userID,
		Title:    title,
		Messages: "[]",
	}

	if err := database.WithRetry(func() error {
		return s.db.Create(&conversation).Error
	}); err != nil {
		return nil, err
	}

	return &conversation, nil
}

// Get returns a conversation owned by the user.
func (s *ConversationService) Get(userID, conversationID uuid.UUID) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := s.db.Where("id = ? AND user_id = ?", conversationID, userID).
		First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

// Delete removes a conversation owned by the user.
func (s *ConversationService) Delete(userID, conversationID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", conversationID, userID).
		Delete(&models.Conversation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrConversationNotFound
	}
	return nil
}

// AppendMessage appends a user message, and optionally a bot response, to
// the stored blob.
func (s *ConversationService) AppendMessage(userID, conversationID uuid.UUID, message, botResponse string) error {
	conversation, err := s.Get(userID, conversationID)
	if err != nil {
		return err
	}

	messages, err := conversation.DecodeMessages()
	if err != nil {
		return err
	}

	messages = append(messages, models.Message{Role: models.RoleUser, Content: message})
	if botResponse != "" {
		messages = append(messages, models.Message{Role: models.RoleAssistant, Content: botResponse})
	}

	if err := conversation.EncodeMessages(messages); err != nil {
		return err
	}

	return database.WithRetry(func() error {
		return s.db.Save(conversation).Error
	})
}

package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/models"
)

var ErrEmptyMessage = errors.New("no message provided")

// RefusalReply is returned verbatim when the topic gate rejects a question.
const RefusalReply = "Je ne parle que de cuisine ! Pose-moi une question sur les plats, les recettes ou les ingrédients. 😊"

const classifierInstruction = "Tu es un classificateur de questions. Pour chaque question, réponds uniquement par 'OUI' " +
	"si la question concerne la cuisine (cuisine, ingrédients, etc...), ou par 'NON' dans le cas contraire. Ne donne aucune explication."

const (
	// maxHistoryMessages bounds what is sent to the completion API: the
	// system entry plus the most recent exchanges.
	maxHistoryMessages = 10
	titleWordCount     = 5
	titleMaxRunes      = 50
)

// ChatService runs one conversation turn: load, title, assemble, bound,
// gate, complete, persist.
type ChatService struct {
	db              *gorm.DB
	llm             LLMClient
	personalization *PersonalizationService
}

func NewChatService(db *gorm.DB, llm LLMClient, personalization *PersonalizationService) *ChatService {
	return &ChatService{
		db:              db,
		llm:             llm,
		personalization: personalization,
	}
}

// ReduceHistory bounds a history to maxHistoryMessages entries: the leading
// entry plus the most recent nine. Histories at or under the bound are
// returned unchanged. The caller guarantees entry 0 is the system entry
// before the history can grow past the bound; no role check is done here.
func ReduceHistory(history []models.Message) []models.Message {
	if len(history) <= maxHistoryMessages {
		return history
	}

	reduced := make([]models.Message, 0, maxHistoryMessages)
	reduced = append(reduced, history[0])
	reduced = append(reduced, history[len(history)-(maxHistoryMessages-1):]...)
	return reduced
}

// IsCookingQuestion asks the classifier whether the input concerns cooking.
// The decision is positive iff the reply contains "OUI" anywhere,
// case-insensitively. (Substring on purpose: existing behavior, kept until
// product says otherwise.)
func (s *ChatService) IsCookingQuestion(ctx context.Context, userInput string) (bool, error) {
	reply, err := s.llm.Complete(ctx, []models.Message{
		{Role: models.RoleSystem, Content: classifierInstruction},
		{Role: models.RoleUser, Content: userInput},
	})
	if err != nil {
		return false, err
	}

	classification := strings.ToUpper(strings.TrimSpace(reply))
	return strings.Contains(classification, "OUI"), nil
}

// deriveTitle builds a conversation title from the first five words of the
// message, hard-truncated to 50 runes with an ellipsis marker.
func deriveTitle(userInput string) string {
	words := strings.Fields(userInput)
	if len(words) > titleWordCount {
		words = words[:titleWordCount]
	}
	title := strings.Join(words, " ")
	if runes := []rune(title); len(runes) > titleMaxRunes {
		title = string(runes[:titleMaxRunes]) + "..."
	}
	return title
}

// onlySystemMessages reports whether a stored history has no user or
// assistant entries yet.
func onlySystemMessages(messages []models.Message) bool {
	for _, msg := range messages {
		if msg.Role != models.RoleSystem {
			return false
		}
	}
	return true
}

// HandleTurn runs a full chat turn against the conversation and returns the
// assistant reply. The system prompt is recomputed from the owner's current
// personalization on every turn and stripped again before persisting, so
// preference changes apply to all future turns without touching stored
// history.
func (s *ChatService) HandleTurn(ctx context.Context, conversationID uuid.UUID, userInput string) (string, error) {
	userInput = strings.TrimSpace(userInput)
	if userInput == "" {
		return "", ErrEmptyMessage
	}

	var conversation models.Conversation
	if err := s.db.Where("id = ?", conversationID).First(&conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrConversationNotFound
		}
		return "", err
	}

	messages, err := conversation.DecodeMessages()
	if err != nil {
		return "", err
	}

	// First real message names the conversation. Committed on its own so a
	// failed turn still leaves the title behind.
	if onlySystemMessages(messages) {
		title := deriveTitle(userInput)
		if err := database.WithRetry(func() error {
			return s.db.Model(&conversation).Update("title", title).Error
		}); err != nil {
			return "", err
		}
	}

	history := make([]models.Message, 0, len(messages)+2)
	history = append(history, messages...)

	if len(history) == 0 || history[0].Role != models.RoleSystem {
		systemPrompt := s.personalization.BuildSystemPrompt(conversation.UserID)
		history = append([]models.Message{{Role: models.RoleSystem, Content: systemPrompt}}, history...)
	}

	history = append(history, models.Message{Role: models.RoleUser, Content: userInput})
	history = ReduceHistory(history)

	onTopic, err := s.IsCookingQuestion(ctx, userInput)
	if err != nil {
		return "", err
	}

	var reply string
	if !onTopic {
		reply = RefusalReply
	} else {
		reply, err = s.llm.Complete(ctx, history)
		if err != nil {
			return "", err
		}
		reply = strings.TrimSpace(reply)
	}

	history = append(history, models.Message{Role: models.RoleAssistant, Content: reply})

	// The stored blob never carries the system entry; index 0 is dropped
	// unconditionally.
	if err := conversation.EncodeMessages(history[1:]); err != nil {
		return "", err
	}

	if err := database.WithRetry(func() error {
		return s.db.Save(&conversation).Error
	}); err != nil {
		return "", err
	}

	return reply, nil
}

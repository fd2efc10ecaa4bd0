package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message roles as stored in the conversation blob and sent to the LLM API.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role/content entry in a conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation holds an ordered message history as a JSON blob. The stored
// blob never contains the leading system entry; it is recomputed from the
// owner's personalization on every turn.
type Conversation struct {
	ID        uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Title     string    `gorm:"size:100;not null" json:"title"`
	Messages  string    `gorm:"type:text;not null;default:'[]'" json:"messages"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// DecodeMessages unmarshals the stored message blob. An empty column decodes
// to an empty history.
func (c *Conversation) DecodeMessages() ([]Message, error) {
	if c.Messages == "" {
		return []Message{}, nil
	}
	var messages []Message
	if err := json.Unmarshal([]byte(c.Messages), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// EncodeMessages marshals a history back onto the record.
func (c *Conversation) EncodeMessages(messages []Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return err
	}
	c.Messages = string(data)
	return nil
}

package service

import (
	"context"

	"github.com/chefbot/backend/internal/models"
)

// LLMClient is the surface of the external language-model API the chat flow
// consumes: an ordered role/content history in, a text reply out. Both the
// topic classification and the completion call go through it.
type LLMClient interface {
	Complete(ctx context.Context, messages []models.Message) (string, error)
}

// IEmailService defines the interface for email operations
type IEmailService interface {
	SendEmail(to, subject, body string) error
	SendConfirmationEmail(user *models.User, token string) error
	SendPasswordResetEmail(user *models.User, token string) error
}

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chefbot/backend/internal/models"
)

// MockLLMClient is a mock implementation of the LLM client
type MockLLMClient struct {
	mock.Mock
}

func (m *MockLLMClient) Complete(ctx context.Context, messages []models.Message) (string, error) {
	args := m.Called(ctx, messages)
	return args.String(0), args.Error(1)
}

// SentEmail records one email captured by MockEmailService.
type SentEmail struct {
	To      string
	Subject string
	Body    string
	Token   string
}

// MockEmailService captures outgoing mail instead of sending it.
type MockEmailService struct {
	Sent []SentEmail
}

func (m *MockEmailService) SendEmail(to, subject, body string) error {
	m.Sent = append(m.Sent, SentEmail{To: to, Subject: subject, Body: body})
	return nil
}

func (m *MockEmailService) SendConfirmationEmail(user *models.User, token string) error {
	m.Sent = append(m.Sent, SentEmail{To: user.Email, Subject: "confirmation", Token: token})
	return nil
}

func (m *MockEmailService) SendPasswordResetEmail(user *models.User, token string) error {
	m.Sent = append(m.Sent, SentEmail{To: user.Email, Subject: "password-reset", Token: token})
	return nil
}

// LastToken returns the token carried by the most recent email.
func (m *MockEmailService) LastToken() string {
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Token
}

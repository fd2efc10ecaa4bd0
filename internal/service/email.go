package service

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/chefbot/backend/config"
	"github.com/chefbot/backend/internal/models"
)

// EmailService sends transactional mail over SMTP. When SMTP is not
// configured the email is logged instead of sent, so local development works
// without a mail account.
type EmailService struct {
	smtpHost     string
	smtpPort     string
	smtpUsername string
	smtpPassword string
	fromEmail    string
	fromName     string
	frontendURL  string
}

var _ IEmailService = (*EmailService)(nil)

func NewEmailService(cfg *config.Config) *EmailService {
	return &EmailService{
		smtpHost:     cfg.SMTPHost,
		smtpPort:     cfg.SMTPPort,
		smtpUsername: cfg.SMTPUsername,
		smtpPassword: cfg.SMTPPassword,
		fromEmail:    cfg.FromEmail,
		fromName:     cfg.FromName,
		frontendURL:  cfg.FrontendURL,
	}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	if s.smtpHost == "" || s.smtpPort == "" {
		log.Printf("SMTP not configured, logging email instead:\nTo: %s\nSubject: %s\n%s\n--- End Email ---", to, subject, body)
		return nil
	}

	auth := smtp.PlainAuth("", s.smtpUsername, s.smtpPassword, s.smtpHost)

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	msg := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", to, from, subject, body))

	addr := fmt.Sprintf("%s:%s", s.smtpHost, s.smtpPort)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// SendConfirmationEmail sends the address-confirmation link issued at signup.
func (s *EmailService) SendConfirmationEmail(user *models.User, token string) error {
	subject := "No-reply : Confirmation de votre adresse e-mail"
	confirmURL := fmt.Sprintf("%s/confirm-email?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(
		"Bonjour %s,\n\nCliquez sur le lien suivant pour confirmer votre adresse email :\n%s\n\nCe lien expire dans 1 heure.",
		strings.ToUpper(user.LastName), confirmURL,
	)
	return s.SendEmail(user.Email, subject, body)
}

// SendPasswordResetEmail sends the single-use password-reset link.
func (s *EmailService) SendPasswordResetEmail(user *models.User, token string) error {
	subject := "No-reply : Réinitialisation du mot de passe"
	resetURL := fmt.Sprintf("%s/inputNewPassword?token=%s", s.frontendURL, token)
	body := fmt.Sprintf(
		"Bonjour %s,\n\nCliquez sur le lien suivant pour réinitialiser votre mot de passe :\n\n%s\n\n"+
			"Merci d'ignorer cet email si vous n'êtes pas à l'origine de cette opération. "+
			"Ce lien est valable pour une seule modification de mot de passe et expire dans 10 minutes.",
		strings.ToUpper(user.LastName), resetURL,
	)
	return s.SendEmail(user.Email, subject, body)
}

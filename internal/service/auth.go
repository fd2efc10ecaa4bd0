package service

import (
	"errors"
	"log"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/middleware"
	"github.com/chefbot/backend/internal/models"
)

var (
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrTokenAlreadyUsed   = errors.New("token already used")
	ErrWrongPassword      = errors.New("wrong password")
)

// AuthService owns account lifecycle: signup, email confirmation, login,
// password reset and credential changes.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
	email     IEmailService
}

func NewAuthService(db *gorm.DB, jwtSecret string, email IEmailService) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
		email:     email,
	}
}

// Register creates an unverified account and emails a confirmation link.
func (s *AuthService) Register(email, firstName, lastName, password string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrUserExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:        email,
		FirstName:    firstName,
		LastName:     lastName,
		PasswordHash: string(hashedPassword),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	token, err := s.GeneratePurposeToken(user.ID, PurposeEmailConfirmation, emailConfirmationTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.email.SendConfirmationEmail(&user, token); err != nil {
		// The account exists either way; the user can ask for a new link.
		log.Printf("failed to send confirmation email to %s: %v", user.Email, err)
	}

	return &user, nil
}

// Login checks the password and the verified flag, then returns a session
// token.
func (s *AuthService) Login(email, password string) (string, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	if !user.EmailVerified {
		return "", ErrEmailNotVerified
	}

	return s.generateSessionToken(user.ID)
}

// ConfirmEmail verifies a confirmation token and flips the verified flag
// once. Confirming an already-verified account returns ErrAlreadyVerified
// alongside the user so callers can answer politely.
func (s *AuthService) ConfirmEmail(token string) (*models.User, error) {
	userID, err := s.VerifyPurposeToken(token, PurposeEmailConfirmation)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}

	if user.EmailVerified {
		return &user, ErrAlreadyVerified
	}

	user.EmailVerified = true
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}

	return &user, nil
}

// RequestPasswordReset issues a single-use reset token for a verified user
// and emails the link. The token is also recorded as a ResetToken row so a
// consumed link can never be replayed.
func (s *AuthService) RequestPasswordReset(email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	if !user.EmailVerified {
		return ErrEmailNotVerified
	}

	token, err := s.GeneratePurposeToken(user.ID, PurposePasswordReset, passwordResetTokenTTL)
	if err != nil {
		return err
	}

	resetToken := models.ResetToken{UserID: user.ID, Token: token}
	if err := database.WithRetry(func() error {
		return s.db.Create(&resetToken).Error
	}); err != nil {
		return err
	}

	if err := s.email.SendPasswordResetEmail(&user, token); err != nil {
		log.Printf("failed to send reset email to %s: %v", user.Email, err)
	}

	return nil
}

// ResetPassword consumes a reset token and sets the new password. The stored
// row gates reuse: a used row invalidates the token permanently, whatever its
// signature says.
func (s *AuthService) ResetPassword(token, newPassword string) error {
	var resetToken models.ResetToken
	if err := s.db.Where("token = ?", token).First(&resetToken).Error; err != nil {
		return ErrInvalidToken
	}

	if resetToken.Used {
		return ErrTokenAlreadyUsed
	}

	userID, err := s.VerifyPurposeToken(token, PurposePasswordReset)
	if err != nil {
		return err
	}

	resetToken.Used = true
	if err := database.WithRetry(func() error {
		return s.db.Save(&resetToken).Error
	}); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.WithRetry(func() error {
		return s.db.Model(&models.User{}).Where("id = ?", userID).
			Update("password_hash", string(hashedPassword)).Error
	})
}

// UpdateNames changes the user's first and last name.
func (s *AuthService) UpdateNames(userID uuid.UUID, firstName, lastName string) error {
	return database.WithRetry(func() error {
		return s.db.Model(&models.User{}).Where("id = ?", userID).
			Updates(map[string]interface{}{
				"first_name": firstName,
				"last_name":  lastName,
			}).Error
	})
}

// ChangePassword sets a new password after checking the current one.
func (s *AuthService) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return database.WithRetry(func() error {
		return s.db.Model(&user).Update("password_hash", string(hashedPassword)).Error
	})
}

// GetUserByID resolves a user record.
func (s *AuthService) GetUserByID(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// ValidateToken checks a session token and returns its claims.
func (s *AuthService) ValidateToken(tokenString string) (*middleware.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	// Session tokens carry no purpose claim; purpose tokens never open a
	// session.
	if _, hasPurpose := claims["purpose"]; hasPurpose {
		return nil, ErrInvalidToken
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, err
	}

	return &middleware.TokenClaims{UserID: userID}, nil
}

package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/models"
)

// SetupTestDB creates an in-memory SQLite database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestUser inserts a verified user with the given password.
func CreateTestUser(t *testing.T, db *gorm.DB, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:            uuid.New(),
		Email:         email,
		FirstName:     "Marie",
		LastName:      "Dupont",
		PasswordHash:  string(hash),
		EmailVerified: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreateTestConversation inserts an empty conversation for a user.
func CreateTestConversation(t *testing.T, db *gorm.DB, userID uuid.UUID) *models.Conversation {
	t.Helper()

	conversation := &models.Conversation{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    "Nouvelle Conversation",
		Messages: "[]",
	}
	if err := db.Create(conversation).Error; err != nil {
		t.Fatalf("failed to create test conversation: %v", err)
	}

	return conversation
}

package integration

import (
	"context"
	"fmt"
	"os/exec"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/mocks"
	"github.com/chefbot/backend/internal/models"
	"github.com/chefbot/backend/internal/service"
)

// setupPostgres starts a disposable Postgres container and returns a migrated
// connection. Skipped when docker is not available.
func setupPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not available, skipping integration test")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test",
		},
		WaitingFor: wait.ForAll(
			wait.ForLog("database system is ready to accept connections"),
			wait.ForListeningPort("5432/tcp"),
		),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("host=%s port=%s user=test password=test dbname=test sslmode=disable",
		host, port.Port())

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestAccountAndChatFlowOnPostgres(t *testing.T) {
	db := setupPostgres(t)

	email := &mocks.MockEmailService{}
	authService := service.NewAuthService(db, "test-secret", email)
	personalizationService := service.NewPersonalizationService(db)
	conversationService := service.NewConversationService(db)

	// Full account lifecycle against real Postgres.
	_, err := authService.Register("marie@example.com", "Marie", "Dupont", "motdepasse")
	require.NoError(t, err)

	_, err = authService.Login("marie@example.com", "motdepasse")
	require.ErrorIs(t, err, service.ErrEmailNotVerified)

	user, err := authService.ConfirmEmail(email.LastToken())
	require.NoError(t, err)

	token, err := authService.Login("marie@example.com", "motdepasse")
	require.NoError(t, err)
	claims, err := authService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	// Preferences drive the system prompt.
	_, err = personalizationService.Save(user.ID, &models.Personalization{
		Diet:             models.DietVegan,
		FoodGoal:         models.FoodGoalNone,
		KitchenEquipment: models.DefaultKitchenEquipment,
	})
	require.NoError(t, err)
	assert.Contains(t, personalizationService.BuildSystemPrompt(user.ID), "Végan")

	// Conversation persistence round trip.
	conversation, err := conversationService.Create(user.ID, "")
	require.NoError(t, err)

	require.NoError(t, conversationService.AppendMessage(user.ID, conversation.ID,
		"Bonjour chef !", "Bonjour ! Que cuisinons-nous ?"))

	got, err := conversationService.Get(user.ID, conversation.ID)
	require.NoError(t, err)
	messages, err := got.DecodeMessages()
	require.NoError(t, err)
	assert.Len(t, messages, 2)
}

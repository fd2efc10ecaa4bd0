package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/chefbot/backend/internal/api"
	"github.com/chefbot/backend/internal/mocks"
	"github.com/chefbot/backend/internal/router"
	"github.com/chefbot/backend/internal/service"
	"github.com/chefbot/backend/internal/testhelpers"
)

const testFrontendURL = "http://localhost:5173"

type testEnv struct {
	engine *gin.Engine
	db     *gorm.DB
	llm    *mocks.MockLLMClient
	email  *mocks.MockEmailService
	auth   *service.AuthService
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	llm := new(mocks.MockLLMClient)
	email := &mocks.MockEmailService{}

	authService := service.NewAuthService(db, "test-secret", email)
	personalizationService := service.NewPersonalizationService(db)
	conversationService := service.NewConversationService(db)
	favoriteService := service.NewFavoriteService(db)
	chatService := service.NewChatService(db, llm, personalizationService)

	handlers := router.Handlers{
		Auth:            api.NewAuthHandler(authService, testFrontendURL),
		Profile:         api.NewProfileHandler(authService),
		Conversation:    api.NewConversationHandler(conversationService),
		Personalization: api.NewPersonalizationHandler(personalizationService),
		Favorite:        api.NewFavoriteHandler(favoriteService),
		Chat:            api.NewChatHandler(chatService),
	}

	engine := router.SetupRouter(handlers, authService, nil, testFrontendURL)

	return &testEnv{engine: engine, db: db, llm: llm, email: email, auth: authService}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

// loginUser creates a verified user and returns a session token.
func (e *testEnv) loginUser(t *testing.T, email string) string {
	t.Helper()
	testhelpers.CreateTestUser(t, e.db, email, "motdepasse")
	token, err := e.auth.Login(email, "motdepasse")
	require.NoError(t, err)
	return token
}

func TestRegisterConfirmLoginFlow(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      "marie@example.com",
		"first_name": "Marie",
		"last_name":  "Dupont",
		"password":   "motdepasse",
	})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Registering the same address again is reported, not created twice.
	w = env.request(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"email":      "marie@example.com",
		"first_name": "Marie",
		"last_name":  "Dupont",
		"password":   "motdepasse",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "existe déjà")

	// Login is blocked until the emailed link is followed.
	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "marie@example.com",
		"password": "motdepasse",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	confirmToken := env.email.LastToken()
	require.NotEmpty(t, confirmToken)

	w = env.request(t, http.MethodGet, "/api/v1/auth/confirm/"+confirmToken, "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, testFrontendURL+"/login", w.Header().Get("Location"))

	w = env.request(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "marie@example.com",
		"password": "motdepasse",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["token"])
}

func TestConfirmEmailBadToken(t *testing.T) {
	env := setupTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/v1/auth/confirm/pas-un-jeton", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPasswordResetEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	env.loginUser(t, "marie@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/auth/reset-password", "", gin.H{
		"email": "marie@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	resetToken := env.email.LastToken()
	require.NotEmpty(t, resetToken)

	// The answer for an unknown address is indistinguishable.
	w = env.request(t, http.MethodPost, "/api/v1/auth/reset-password", "", gin.H{
		"email": "inconnu@example.com",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/auth/change-password", "", gin.H{
		"token":        resetToken,
		"new_password": "nouveaumotdepasse",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	// Consumed link.
	w = env.request(t, http.MethodPost, "/api/v1/auth/change-password", "", gin.H{
		"token":        resetToken,
		"new_password": "encoreunautre",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "déjà été utilisé")

	_, err := env.auth.Login("marie@example.com", "nouveaumotdepasse")
	assert.NoError(t, err)
}

func TestProtectedRoutesRequireAuth(t *testing.T) {
	env := setupTestEnv(t)

	for _, path := range []string{
		"/api/v1/profile",
		"/api/v1/conversations",
		"/api/v1/personalization",
		"/api/v1/favorites",
	} {
		w := env.request(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}

	w := env.request(t, http.MethodGet, "/api/v1/profile", "jeton-invalide", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	token := env.loginUser(t, "marie@example.com")

	w := env.request(t, http.MethodGet, "/api/v1/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var profile api.ProfileResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "marie@example.com", profile.Email)
	assert.Equal(t, "Marie", profile.FirstName)

	w = env.request(t, http.MethodPut, "/api/v1/profile/names", token, gin.H{
		"first_name": "Anne",
		"last_name":  "Martin",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/profile", token, nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Anne", profile.FirstName)

	w = env.request(t, http.MethodPut, "/api/v1/profile/password", token, gin.H{
		"current_password": "mauvais",
		"new_password":     "nouveaumotdepasse",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPut, "/api/v1/profile/password", token, gin.H{
		"current_password": "motdepasse",
		"new_password":     "nouveaumotdepasse",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestConversationEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	token := env.loginUser(t, "marie@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/conversations", token, gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)

	var created api.ConversationSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "Nouvelle Conversation", created.Title)

	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/v1/conversations/%s/messages", created.ID), token, gin.H{
		"message":      "Bonjour chef !",
		"bot_response": "Bonjour ! Que cuisinons-nous ?",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/conversations/"+created.ID.String(), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var conversation api.ConversationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conversation))
	require.Len(t, conversation.Messages, 2)

	w = env.request(t, http.MethodGet, "/api/v1/conversations", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var list []api.ConversationSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	// Another user cannot see it.
	otherToken := env.loginUser(t, "other@example.com")
	w = env.request(t, http.MethodGet, "/api/v1/conversations/"+created.ID.String(), otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/conversations/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/conversations/"+created.ID.String(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPersonalizationEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	token := env.loginUser(t, "marie@example.com")

	w := env.request(t, http.MethodGet, "/api/v1/personalization", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var prefs api.PersonalizationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.Equal(t, "Aucun régime", string(prefs.Diet))
	assert.Contains(t, prefs.KitchenEquipment, "Plaque de cuisson")

	w = env.request(t, http.MethodPut, "/api/v1/personalization", token, gin.H{
		"diet":               "Carnivore",
		"food_goal":          "Aucun objectif",
		"allergies":          []string{},
		"banned_ingredients": []string{},
		"kitchen_equipment":  []string{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPut, "/api/v1/personalization", token, gin.H{
		"diet":               "Végétarien",
		"food_goal":          "Perte de poids",
		"allergies":          []string{"Arachides"},
		"banned_ingredients": []string{"Coriandre"},
		"kitchen_equipment":  []string{"Four"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prefs))
	assert.Equal(t, "Végétarien", string(prefs.Diet))
	assert.Equal(t, []string{"Arachides"}, prefs.Allergies)
}

func TestFavoriteEndpoints(t *testing.T) {
	env := setupTestEnv(t)
	token := env.loginUser(t, "marie@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/favorites", token, gin.H{
		"type":    "Recette pertinente",
		"title":   "Ratatouille",
		"content": "Couper les légumes...",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/favorites", token, gin.H{
		"type":    "Blague",
		"title":   "titre",
		"content": "contenu",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodGet, "/api/v1/favorites", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var favorites []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &favorites))
	require.Len(t, favorites, 1)

	favoriteID := favorites[0]["id"].(string)
	w = env.request(t, http.MethodDelete, "/api/v1/favorites/"+favoriteID, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.request(t, http.MethodDelete, "/api/v1/favorites/"+uuid.NewString(), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChatEndpoint(t *testing.T) {
	env := setupTestEnv(t)
	token := env.loginUser(t, "marie@example.com")

	w := env.request(t, http.MethodPost, "/api/v1/conversations", token, gin.H{})
	require.Equal(t, http.StatusCreated, w.Code)
	var created api.ConversationSummary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	env.llm.On("Complete", mock.Anything, mock.Anything).Return("OUI", nil).Once()
	env.llm.On("Complete", mock.Anything, mock.Anything).Return("Voici une recette de ratatouille.", nil).Once()

	w = env.request(t, http.MethodPost, "/api/v1/chat/"+created.ID.String(), token, gin.H{
		"message": "Comment faire une ratatouille ?",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ChatResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Voici une recette de ratatouille.", resp.Reply)

	w = env.request(t, http.MethodPost, "/api/v1/chat/"+created.ID.String(), token, gin.H{
		"message": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/chat/"+uuid.NewString(), token, gin.H{
		"message": "Bonjour",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.request(t, http.MethodPost, "/api/v1/chat/"+created.ID.String(), "", gin.H{
		"message": "Bonjour",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	env.llm.AssertExpectations(t)
}

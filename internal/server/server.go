package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chefbot/backend/config"
	"github.com/chefbot/backend/internal/api"
	"github.com/chefbot/backend/internal/database"
	"github.com/chefbot/backend/internal/middleware"
	"github.com/chefbot/backend/internal/router"
	"github.com/chefbot/backend/internal/service"
)

// Server wires the database, services and HTTP layer together.
type Server struct {
	cfg    *config.Config
	db     *gorm.DB
	engine *gin.Engine
	http   *http.Server
}

// New builds a fully wired server from configuration.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	// Redis is optional: without it the chat endpoint runs unthrottled.
	var chatLimiter *middleware.RateLimiter
	if redisClient, err := database.NewRedisClient(cfg); err != nil {
		log.Printf("redis unavailable, chat rate limiting disabled: %v", err)
	} else {
		chatLimiter = middleware.NewChatRateLimiter(redisClient)
	}

	llmService, err := service.NewLLMService(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM service: %w", err)
	}

	emailService := service.NewEmailService(cfg)
	authService := service.NewAuthService(db, cfg.JWTSecret, emailService)
	personalizationService := service.NewPersonalizationService(db)
	conversationService := service.NewConversationService(db)
	favoriteService := service.NewFavoriteService(db)
	chatService := service.NewChatService(db, llmService, personalizationService)

	handlers := router.Handlers{
		Auth:            api.NewAuthHandler(authService, cfg.FrontendURL),
		Profile:         api.NewProfileHandler(authService),
		Conversation:    api.NewConversationHandler(conversationService),
		Personalization: api.NewPersonalizationHandler(personalizationService),
		Favorite:        api.NewFavoriteHandler(favoriteService),
		Chat:            api.NewChatHandler(chatService),
	}

	engine := router.SetupRouter(handlers, authService, chatLimiter, cfg.FrontendURL)

	return &Server{
		cfg:    cfg,
		db:     db,
		engine: engine,
	}, nil
}

// Start runs the HTTP server until it fails or is shut down.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.engine,
	}

	log.Printf("listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}

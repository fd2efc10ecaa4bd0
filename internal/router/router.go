package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/chefbot/backend/internal/api"
	"github.com/chefbot/backend/internal/middleware"
)

// Handlers bundles the HTTP handlers wired into the router.
type Handlers struct {
	Auth            *api.AuthHandler
	Profile         *api.ProfileHandler
	Conversation    *api.ConversationHandler
	Personalization *api.PersonalizationHandler
	Favorite        *api.FavoriteHandler
	Chat            *api.ChatHandler
}

// SetupRouter configures the application routes. chatLimiter is nil when
// Redis is unavailable; the chat endpoint then runs unthrottled.
func SetupRouter(
	handlers Handlers,
	validator middleware.TokenValidator,
	chatLimiter *middleware.RateLimiter,
	frontendURL string,
) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{frontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
		auth.GET("/confirm/:token", handlers.Auth.ConfirmEmail)
		auth.POST("/reset-password", handlers.Auth.ResetPassword)
		auth.POST("/change-password", handlers.Auth.ChangePassword)
	}

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		profile := protected.Group("/profile")
		{
			profile.GET("", handlers.Profile.GetProfile)
			profile.PUT("/names", handlers.Profile.UpdateNames)
			profile.PUT("/password", handlers.Profile.UpdatePassword)
		}

		conversations := protected.Group("/conversations")
		{
			conversations.GET("", handlers.Conversation.List)
			conversations.POST("", handlers.Conversation.Create)
			conversations.GET("/:id", handlers.Conversation.Get)
			conversations.DELETE("/:id", handlers.Conversation.Delete)
			conversations.POST("/:id/messages", handlers.Conversation.AppendMessage)
		}

		personalization := protected.Group("/personalization")
		{
			personalization.GET("", handlers.Personalization.Get)
			personalization.PUT("", handlers.Personalization.Update)
		}

		favorites := protected.Group("/favorites")
		{
			favorites.GET("", handlers.Favorite.List)
			favorites.POST("", handlers.Favorite.Add)
			favorites.DELETE("/:id", handlers.Favorite.Delete)
		}

		chat := protected.Group("/chat")
		if chatLimiter != nil {
			chat.Use(chatLimiter.RateLimitMiddleware())
		}
		{
			chat.POST("/:conversation_id", handlers.Chat.Chat)
		}
	}

	return router
}

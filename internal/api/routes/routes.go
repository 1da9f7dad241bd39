package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/vimukti/vimukti-api/internal/api/handlers"
	"github.com/vimukti/vimukti-api/internal/api/middleware"
	"github.com/vimukti/vimukti-api/internal/services"
)

type Deps struct {
	Auth    *handlers.AuthHandler
	User    *handlers.UserHandler
	Session *handlers.SessionHandler
	Chat    *handlers.ChatHandler

	AuthService services.AuthService
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	api := r.Group("/api")

	// Browser-facing OAuth endpoints, no bearer token yet
	api.GET("/login/google", d.Auth.LoginGoogle)
	api.GET("/auth/google", d.Auth.GoogleCallback)

	// Everything else requires a session token
	auth := api.Group("/")
	auth.Use(middleware.SessionAuth(d.AuthService))

	auth.GET("/auth/profile", d.Auth.Profile)
	auth.POST("/onboarding", d.User.CompleteOnboarding)

	auth.POST("/chat", d.Chat.Send)
	auth.GET("/chat/sessions", d.Session.List)
	auth.POST("/chat/sessions", d.Session.Create)
	auth.GET("/chat/sessions/:session_id/messages", d.Chat.ListMessages)
}

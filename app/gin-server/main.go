package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/vimukti/vimukti-api/config"
	"github.com/vimukti/vimukti-api/internal/api/handlers"
	"github.com/vimukti/vimukti-api/internal/api/middleware"
	"github.com/vimukti/vimukti-api/internal/api/routes"
	"github.com/vimukti/vimukti-api/internal/cache"
	"github.com/vimukti/vimukti-api/internal/logger"
	"github.com/vimukti/vimukti-api/internal/providers/llm"
	mongorepo "github.com/vimukti/vimukti-api/internal/repositories/mongo"
	"github.com/vimukti/vimukti-api/internal/services"
)

func main() {
	_ = godotenv.Load()

	lg := logger.New()
	cfg := config.Load()

	if err := config.InitMongo(); err != nil {
		log.Fatalf("MongoDB init error: %v", err)
	}
	if err := config.EnsureMongoIndexes(); err != nil {
		log.Fatalf("MongoDB index error: %v", err)
	}
	lg.Info("MongoDB connected")

	if err := config.InitRedis(); err != nil {
		log.Fatalf("Redis init error: %v", err)
	}
	lg.Info("Redis connected")

	provider, err := newLLMProvider(cfg)
	if err != nil {
		log.Fatalf("LLM provider init error: %v", err)
	}
	defer provider.Close()

	db := config.MongoDatabase()
	users := mongorepo.NewUserRepo(db)
	sessions := mongorepo.NewSessionRepo(db)
	messages := mongorepo.NewMessageRepo(db)

	redisCache := cache.NewRedisCache(config.RedisClient)

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.OAuthRedirectURL,
		Scopes:       []string{"openid", "email", "profile"},
		Endpoint:     google.Endpoint,
	}

	authSvc := services.NewAuthService(users, redisCache, oauthCfg, lg)
	userSvc := services.NewUserService(users, redisCache)
	sessionSvc := services.NewSessionService(sessions)
	chatSvc := services.NewChatService(provider, sessions, messages, lg)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(lg))

	routes.RegisterRoutes(r, routes.Deps{
		Auth:        handlers.NewAuthHandler(authSvc, cfg.FrontendURL, lg),
		User:        handlers.NewUserHandler(userSvc),
		Session:     handlers.NewSessionHandler(sessionSvc),
		Chat:        handlers.NewChatHandler(chatSvc),
		AuthService: authSvc,
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newLLMProvider(cfg config.App) (llm.Provider, error) {
	if cfg.LLMProvider == "vertex" {
		return llm.NewVertexGemini(context.Background(), cfg.VertexProjectID, cfg.VertexLocation, cfg.VertexModel)
	}
	return llm.NewMistral(cfg.MistralAPIKey, cfg.MistralBaseURL, cfg.MistralModel), nil
}

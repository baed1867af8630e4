package main

import (
	"log"
	"log/slog"
	"net/http"
	"os"

	_ "talenthub/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"talenthub/internal/auth"
	"talenthub/internal/cache"
	"talenthub/internal/config"
	"talenthub/internal/db"
	"talenthub/internal/handler"
	"talenthub/internal/logging"
	"talenthub/internal/repository"
	"talenthub/internal/router"
	"talenthub/internal/service"
)

// @title TalentHub API
// @version 1.0
// @description Talent/business marketplace backend: credential authentication, session management, and role-gated views.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey SessionAuth
// @in header
// @name Authorization
// @description Session token, either as a bearer header or the session cookie.
func main() {
	cfg := config.Load()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})
	cacheClient := cache.NewFromRedis(redisClient)

	// Repositories
	userRepo := repository.NewUserRepository(gormDB)

	// Auth components
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	codec := auth.NewTokenCodec(cfg.SessionSecret, cfg.SessionTTL)
	sessionStore := auth.NewRedisSessionStore(redisClient)
	sessions := auth.NewSessionManager(codec, sessionStore, userRepo)

	// Services
	authService := service.NewAuthService(userRepo, hasher, sessions, logger)
	userService := service.NewUserService(userRepo, cacheClient)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	userHandler := handler.NewUserHandler(userService)

	// Register routes
	router.Register(e, cfg, codec, sessions, authHandler, userHandler)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

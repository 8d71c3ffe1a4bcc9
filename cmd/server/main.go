package main

import (
	"log"
	"net/http"

	"alemsite/docs"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"alemsite/internal/auth"
	"alemsite/internal/config"
	"alemsite/internal/db"
	"alemsite/internal/handler"
	"alemsite/internal/middleware"
	"alemsite/internal/model"
	"alemsite/internal/repository"
	"alemsite/internal/router"
	"alemsite/internal/service"
)

// @title Alem Site API
// @version 1.0
// @description Content backend for the biography site: forum, opinions, users, with JWT authentication.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.Use(echomiddleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Reaction{},
		&model.Category{},
		&model.Opinion{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	postRepo := repository.NewPostRepository(gormDB)
	commentRepo := repository.NewCommentRepository(gormDB)
	categoryRepo := repository.NewCategoryRepository(gormDB)
	reactionRepo := repository.NewReactionRepository(gormDB)
	opinionRepo := repository.NewOpinionRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret)
	authn := middleware.NewAuthenticator(tokenService, userRepo)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	forumService := service.NewForumService(postRepo, commentRepo, categoryRepo, reactionRepo, userRepo, cfg.ForumPageSize)
	userService := service.NewUserService(userRepo)
	opinionService := service.NewOpinionService(opinionRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService, cfg)
	forumHandler := handler.NewForumHandler(forumService)
	userHandler := handler.NewUserHandler(userService)
	opinionHandler := handler.NewOpinionHandler(opinionService)

	// Register routes
	router.Register(
		e,
		cfg,
		authn,
		authHandler,
		forumHandler,
		userHandler,
		opinionHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

package main

import (
	"log"
	"net/http"

	_ "github.com/Deepak-Mahanta/Votify/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/Deepak-Mahanta/Votify/internal/auth"
	"github.com/Deepak-Mahanta/Votify/internal/cache"
	"github.com/Deepak-Mahanta/Votify/internal/config"
	"github.com/Deepak-Mahanta/Votify/internal/db"
	"github.com/Deepak-Mahanta/Votify/internal/handler"
	"github.com/Deepak-Mahanta/Votify/internal/model"
	"github.com/Deepak-Mahanta/Votify/internal/repository"
	"github.com/Deepak-Mahanta/Votify/internal/router"
	"github.com/Deepak-Mahanta/Votify/internal/service"
)

// @title Votify API
// @version 1.0
// @description Voting backend with JWT authentication, admin candidate management, and a one-vote-per-voter ledger.
// @host localhost:8080
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Candidate{},
		&model.Ballot{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	candidateRepo := repository.NewCandidateRepository(gormDB)
	voteRepo := repository.NewVoteRepository(gormDB)

	// Initialize auth components
	tokenService := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokenService)
	candidateService := service.NewCandidateService(candidateRepo, cacheClient)
	voteService := service.NewVoteService(voteRepo, candidateRepo, cacheClient, cfg.StorageTimeout)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	candidateHandler := handler.NewCandidateHandler(candidateService)
	voteHandler := handler.NewVoteHandler(voteService)

	// Register routes
	router.Register(
		e,
		cfg,
		tokenService,
		authHandler,
		candidateHandler,
		voteHandler,
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}

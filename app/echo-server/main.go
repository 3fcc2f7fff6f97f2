package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agenticWallet/app/echo-server/router"
	"agenticWallet/business/cards"
	"agenticWallet/business/recommend"
	"agenticWallet/business/transactions"
	userService "agenticWallet/business/user"
	"agenticWallet/internal/middleware"
	"agenticWallet/internal/repository/groq"
	psqlRepo "agenticWallet/internal/repository/postgres"
	redisRepo "agenticWallet/internal/repository/redis"
	"agenticWallet/internal/rest"
	"agenticWallet/pkg/config"
	"agenticWallet/pkg/database"
	redisdb "agenticWallet/pkg/database/redis"
	"agenticWallet/pkg/logger"
	"agenticWallet/pkg/metrics"
	"agenticWallet/pkg/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.App.Environment)
	logger.Info("Starting Agentic Wallet", "version", cfg.App.Version)

	utils.InitJWT(cfg.JWT.SecretKey)
	metrics.Init()

	db, err := database.InitPostgres(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	logger.Info("Database connected successfully")

	redisClient, err := redisdb.NewRedisClient(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to Redis", "error", err)
	}
	defer func() {
		if err := redisdb.CloseRedisClient(redisClient); err != nil {
			logger.Error("Failed to close Redis client", err)
		}
	}()

	// Reasoning service client (Groq, OpenAI-compatible)
	var reasoningClient recommend.ReasoningClient
	if cfg.Groq.APIKey != "" {
		reasoningClient = groq.NewGroqRepository(groq.GroqConfig{
			APIKey:  cfg.Groq.APIKey,
			BaseURL: cfg.Groq.BaseURL,
			Model:   cfg.Groq.Model,
		})
	} else {
		logger.Warn("GROQ_API_KEY not set, recommendations run without explanations")
	}

	// Init validate
	validate := validator.New()

	// Init repo
	userRepo := psqlRepo.NewUserRepository(db)
	cardRepo := psqlRepo.NewCardRepository(db)
	txnRepo := psqlRepo.NewTransactionRepository(db)
	sessionRepo := redisRepo.NewSessionRepository(redisClient)
	cardCache := redisRepo.NewCardCache(redisClient)

	// Init service
	usrService := userService.NewUserService(userRepo, sessionRepo, validate)
	cardService := cards.NewService(cardRepo, cardCache, cfg.App.CardDataKey)
	recommendService := recommend.NewService(reasoningClient, cfg.Groq.MaxRetries)
	txnService := transactions.NewService(txnRepo, cardService)

	// Init handler
	userHandler := rest.NewUserHandler(usrService)
	cardHandler := rest.NewCardHandler(cardService)
	recommendHandler := rest.NewRecommendHandler(recommendService, cardService)
	txnHandler := rest.NewTransactionHandler(txnService)
	metaHandler := rest.NewMetaHandler(cfg.App.Name, cfg.App.Version, db)

	// Init echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// HTTP error handler
	e.HTTPErrorHandler = middleware.ErrorHandler

	// Global middleware
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: []string{"http://localhost:3000", "http://localhost:8080"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Auth middleware
	authRequired := middleware.AuthMiddlewareWithRedis(usrService)
	selfOrAdmin := middleware.SelfOrAdmin()

	// Setup routes
	api := e.Group("/api/v1")
	router.SetupUserRoutes(api, userHandler, authRequired, selfOrAdmin)
	router.SetupCardRoutes(api, cardHandler, authRequired)
	router.SetupRecommendRoutes(api, recommendHandler, authRequired)
	router.SetupTransactionRoutes(api, txnHandler, authRequired)
	router.SetupMetaRoutes(e, api, metaHandler)

	// Goroutine server
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		logger.Info("Server starting", "address", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown server
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}

	logger.Info("Server stopped")
}

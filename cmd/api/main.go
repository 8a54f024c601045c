package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/sync/errgroup"

	"walletledger/internal/config"
	"walletledger/internal/database"
	"walletledger/internal/handlers"
	"walletledger/internal/logger"
	"walletledger/internal/middleware"
	"walletledger/internal/services"
	"walletledger/internal/storage"
	"walletledger/internal/validator"

	_ "walletledger/internal/docs" // Import swagger docs
)

// @title           Wallet Ledger API
// @version         1.0
// @description     Personal finance ledger: wallets, transactions, categories and summaries.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the unlock token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	dbManager, err := database.NewManager(database.NewConfig(appConfig))
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("Failed to close database", "error", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Stores
	db := dbManager.DB()
	persister := storage.NewPersister(storage.NewKVStore(db), appConfig.PersistFlushInterval)
	walletService := services.NewWalletService(persister)
	transactionService := services.NewTransactionService(persister, walletService, services.LedgerConfig{
		WeekStart:  appConfig.WeekStart,
		SearchMode: services.ParseSearchMode(appConfig.SearchMode),
	})
	categoryService := services.NewCategoryService(persister)
	settingsService := services.NewSettingsService(persister)
	auditService := services.NewAuditService(db)

	stores := []struct {
		name string
		load func(context.Context) error
	}{
		{"wallets", walletService.Load},
		{"transactions", transactionService.Load},
		{"categories", categoryService.Load},
		{"settings", settingsService.Load},
	}
	for _, s := range stores {
		if err := s.load(ctx); err != nil {
			return fmt.Errorf("failed to load %s: %w", s.name, err)
		}
	}

	issuer := middleware.NewTokenIssuer(appConfig.JWTSecret, appConfig.JWTExpirationDur)
	validator.Register()

	router := gin.New()
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "pending_snapshots": persister.Pending()})
	})

	handlers.RegisterRoutes(router.Group("/api/v1"), handlers.Handlers{
		Auth:        handlers.NewAuthHandler(settingsService, issuer),
		Wallet:      handlers.NewWalletHandler(walletService, transactionService, auditService),
		Transaction: handlers.NewTransactionHandler(transactionService, auditService),
		Category:    handlers.NewCategoryHandler(categoryService, auditService),
		Settings:    handlers.NewSettingsHandler(settingsService, auditService),
		Report:      handlers.NewReportHandler(transactionService, walletService, categoryService, settingsService),
	}, middleware.AuthMiddleware(settingsService, issuer))

	srv := &http.Server{
		Addr:              ":" + appConfig.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The persister outlives the server so writes from draining requests
	// reach the final flush.
	persistCtx, stopPersister := context.WithCancel(context.Background())
	defer stopPersister()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return persister.Run(persistCtx)
	})
	g.Go(func() error {
		log.Infof("Starting wallet ledger server on port %s", appConfig.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		defer stopPersister()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

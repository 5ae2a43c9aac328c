package main

import (
	"log"

	"github.com/danuartha/warungpos-api/internal/application/service"
	"github.com/danuartha/warungpos-api/internal/config"
	"github.com/danuartha/warungpos-api/internal/infrastructure/database"
	"github.com/danuartha/warungpos-api/internal/infrastructure/repository"
	"github.com/danuartha/warungpos-api/internal/presentation/http/handler"
	"github.com/danuartha/warungpos-api/internal/presentation/http/routes"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	// Seed default data
	if err := database.SeedDefaultData(db, &cfg.POS, logger); err != nil {
		logger.Warn("failed to seed default data", zap.Error(err))
	}

	// Initialize repositories
	repos := repository.NewRepositories(db)
	reportRepo := repository.NewReportRepository(db)
	txManager := repository.NewTxManager(db)

	// Initialize services
	overrideManager := service.NewPriceOverrideManager(logger)
	pricingEngine := service.NewTaxPricingEngine(logger)
	reportService := service.NewReportService(reportRepo, logger)
	saleService := service.NewSaleService(repos, txManager, pricingEngine, overrideManager, reportService, logger)
	queryService := service.NewOrderQueryService(repos)
	itemService := service.NewItemService(repos)

	// Initialize handlers
	handlers := &routes.Handlers{
		Sale:   handler.NewSaleHandler(saleService),
		Order:  handler.NewOrderHandler(queryService, logger),
		Report: handler.NewReportHandler(reportService),
		Item:   handler.NewItemHandler(itemService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg: cfg,
		Log: logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	logger.Info("starting server",
		zap.String("service", cfg.App.Name),
		zap.String("port", port),
		zap.String("env", cfg.App.Env))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.App.Env == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/retailpk/fbrpos-api/internal/application/pos"
	"github.com/retailpk/fbrpos-api/internal/application/service"
	"github.com/retailpk/fbrpos-api/internal/config"
	"github.com/retailpk/fbrpos-api/internal/infrastructure/database"
	"github.com/retailpk/fbrpos-api/internal/infrastructure/repository"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/handler"
	"github.com/retailpk/fbrpos-api/internal/presentation/http/routes"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed sample master data for local development
	if cfg.POS.SeedSampleData {
		if err := database.SeedSampleData(db); err != nil {
			log.Printf("Warning: Failed to seed sample data: %v", err)
		}
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	taxRateRepo := repository.NewTaxRateRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	branchRepo := repository.NewBranchRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	saleRepo := repository.NewSaleRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Cached master data wrappers for read-heavy lookups. Checkout and sale
	// creation keep the uncached repositories so they always re-check the
	// branch and device at submission time.
	cachedBranchRepo := repository.NewCachedBranchRepository(branchRepo, cfg.POS.MasterDataTTL)
	cachedDeviceRepo := repository.NewCachedDeviceRepository(deviceRepo, cfg.POS.MasterDataTTL)

	// Register session store
	sessionStore := pos.NewStore(pos.StoreConfig{
		SessionTTL:      cfg.POS.SessionTTL,
		CleanupInterval: 15 * time.Minute,
	})

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo, taxRateRepo)
	categoryService := service.NewCategoryService(categoryRepo)
	taxRateService := service.NewTaxRateService(taxRateRepo)
	customerService := service.NewCustomerService(customerRepo)
	branchService := service.NewBranchService(cachedBranchRepo, cachedDeviceRepo)
	saleService := service.NewSaleService(saleRepo, branchRepo, deviceRepo, customerRepo)
	checkoutService := service.NewCheckoutService(sessionStore, saleRepo, branchRepo, deviceRepo, customerRepo)
	exportService := service.NewExportService(saleRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		TaxRate:  handler.NewTaxRateHandler(taxRateService),
		Customer: handler.NewCustomerHandler(customerService),
		Branch:   handler.NewBranchHandler(branchService),
		Sale:     handler.NewSaleHandler(saleService, exportService),
		POS:      handler.NewPOSHandler(sessionStore, productService, checkoutService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

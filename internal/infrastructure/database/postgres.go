package database

import (
	"fmt"
	"log"

	"github.com/retailpk/fbrpos-api/internal/config"
	"github.com/retailpk/fbrpos-api/internal/domain/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	logLevel := logger.Info

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Println("Successfully connected to PostgreSQL database")
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		// Catalog entities
		&entity.Category{},
		&entity.TaxRate{},
		&entity.Product{},

		// Master data entities
		&entity.Customer{},
		&entity.Branch{},
		&entity.Device{},

		// Sale entities
		&entity.Sale{},
		&entity.SaleItem{},
		&entity.Payment{},
		&entity.InvoiceSyncLog{},

		// System entities
		&entity.IdempotencyKey{},
	)

	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// SeedSampleData seeds a minimal catalog and register setup for development
func SeedSampleData(db *gorm.DB) error {
	log.Println("Seeding sample data...")

	var rate entity.TaxRate
	if err := db.Where("name = ?", "Standard 17%").First(&rate).Error; err != nil {
		rate = entity.TaxRate{Name: "Standard 17%", Rate: 17}
		if err := db.Create(&rate).Error; err != nil {
			log.Printf("Warning: failed to create tax rate: %v", err)
		}
	}

	var category entity.Category
	if err := db.Where("name = ?", "General").First(&category).Error; err != nil {
		category = entity.Category{Name: "General"}
		if err := db.Create(&category).Error; err != nil {
			log.Printf("Warning: failed to create category: %v", err)
		}
	}

	products := []entity.Product{
		{Code: "PROD-SAMPLE1", Name: "Sample Item A", Price: 100, CategoryID: &category.ID, TaxRateID: &rate.ID},
		{Code: "PROD-SAMPLE2", Name: "Sample Item B", Price: 250.50, CategoryID: &category.ID, TaxRateID: &rate.ID},
		{Code: "PROD-SAMPLE3", Name: "Untaxed Item", Price: 75, CategoryID: &category.ID},
	}
	for i := range products {
		var existing entity.Product
		if err := db.Where("code = ?", products[i].Code).First(&existing).Error; err != nil {
			if err := db.Create(&products[i]).Error; err != nil {
				log.Printf("Warning: failed to create product %s: %v", products[i].Code, err)
			}
		}
	}

	var branch entity.Branch
	if err := db.Where("fbr_branch_code = ?", "BR-001").First(&branch).Error; err != nil {
		strn := "0700001"
		branch = entity.Branch{
			Name:          "Main Branch",
			NTN:           "1234567",
			STRN:          &strn,
			FBRBranchCode: "BR-001",
			SaleTypeCode:  "T1000017",
		}
		if err := db.Create(&branch).Error; err != nil {
			log.Printf("Warning: failed to create branch: %v", err)
		}
	}

	var device entity.Device
	if err := db.Where("device_identifier = ?", "DEV-001").First(&device).Error; err != nil {
		device = entity.Device{
			BranchID:         branch.ID,
			Name:             "Counter 1",
			DeviceIdentifier: "DEV-001",
			FBRPosRegNo:      "POS-90001",
		}
		if err := db.Create(&device).Error; err != nil {
			log.Printf("Warning: failed to create device: %v", err)
		}
	}

	var customer entity.Customer
	if err := db.Where("name = ?", "Walk-in Customer").First(&customer).Error; err != nil {
		customer = entity.Customer{Name: "Walk-in Customer"}
		if err := db.Create(&customer).Error; err != nil {
			log.Printf("Warning: failed to create customer: %v", err)
		}
	}

	log.Println("Sample data seeding completed")
	return nil
}

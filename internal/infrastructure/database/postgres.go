package database

import (
	"errors"
	"fmt"

	"github.com/danuartha/warungpos-api/internal/config"
	"github.com/danuartha/warungpos-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)

	log.Info("connected to PostgreSQL database", zap.String("host", cfg.Host), zap.String("db", cfg.Name))
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		// Actors
		&entity.User{},

		// Catalog
		&entity.Category{},
		&entity.Item{},

		// Sales
		&entity.Order{},
		&entity.OrderLine{},
		&entity.Receipt{},

		// Reporting
		&entity.DailyReport{},
		&entity.ReportLedgerEntry{},

		// Configuration
		&entity.TaxSetting{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// SeedDefaultData creates the tax configuration record and the default
// point-of-sale cashier if they do not exist yet
func SeedDefaultData(db *gorm.DB, cfg *config.POSConfig, log *zap.Logger) error {
	var setting entity.TaxSetting
	err := db.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		setting = entity.TaxSetting{
			TaxPercent:      decimal.NewFromFloat(cfg.TaxPercent).Round(2),
			DiscountPercent: decimal.NewFromFloat(cfg.DiscountPercent).Round(2),
		}
		if err := db.Create(&setting).Error; err != nil {
			return fmt.Errorf("failed to seed tax setting: %w", err)
		}
		log.Info("seeded tax setting",
			zap.String("tax_percent", setting.TaxPercent.String()),
			zap.String("discount_percent", setting.DiscountPercent.String()))
	} else if err != nil {
		return err
	}

	var cashier entity.User
	err = db.First(&cashier, "name = ?", entity.DefaultCashierName).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cashier = entity.User{Name: entity.DefaultCashierName}
		if err := db.Create(&cashier).Error; err != nil {
			return fmt.Errorf("failed to seed default cashier: %w", err)
		}
		log.Info("seeded default cashier", zap.String("name", cashier.Name))
	} else if err != nil {
		return err
	}

	return nil
}

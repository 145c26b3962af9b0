package database

import (
	"fmt"
	"time"

	"github.com/halebuild/takeoff-engine/internal/config"
	"github.com/halebuild/takeoff-engine/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase creates a new database connection
func NewDatabase(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := cfg.ConnectionString()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetimeDuration())

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// AutoMigrate creates the takeoff schema tables in foreign-key dependency
// order (for development only; production uses goose migrations)
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Division{},
		&domain.Community{},
		&domain.Plan{},
		&domain.PlanElevation{},
		&domain.PlanOption{},
		&domain.Job{},
		&domain.CostGroup{},
		&domain.CostCode{},
		&domain.Formula{},
		&domain.Item{},
		&domain.Product{},
		&domain.Vendor{},
		&domain.VendorPricing{},
		&domain.TakeoffLine{},
	)
}

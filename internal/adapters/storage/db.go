// Package storage implements the repository ports on a relational store
// via GORM. The database URL selects the driver by scheme: sqlite:// for
// the embedded single-file store, postgres:// for PostgreSQL.
package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/jsamuelsen/quotewall/internal/platform/config"
)

// Open connects to the database described by cfg.URL and applies pool
// settings. The GORM logger is silenced; query logging happens at the
// application layer.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(cfg.URL, "postgres://"):
		dialector = postgres.Open(cfg.URL)
	case strings.HasPrefix(cfg.URL, "sqlite://"):
		dialector = sqlite.Open(strings.TrimPrefix(cfg.URL, "sqlite://"))
	default:
		return nil, fmt.Errorf("database url must start with sqlite:// or postgres://, got %q", cfg.URL)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("accessing connection pool: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(&userRecord{}, &quoteRecord{}, &reactionRecord{})
	if err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	return nil
}

// HealthChecker reports database connectivity for the health endpoint.
type HealthChecker struct {
	db *gorm.DB
}

// NewHealthChecker creates a database health checker.
func NewHealthChecker(db *gorm.DB) *HealthChecker {
	return &HealthChecker{db: db}
}

// Name returns the health check identifier.
func (h *HealthChecker) Name() string {
	return "database"
}

// Check pings the database.
func (h *HealthChecker) Check(ctx context.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}

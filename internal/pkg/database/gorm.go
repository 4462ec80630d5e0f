package database

import (
	"axis6/internal/api/config"
	"axis6/internal/pkg/logger"
	"fmt"
	log "log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormDB opens the Postgres connection and configures the pool.
func NewGormDB(cfg *config.DBConfig) (*gorm.DB, error) {
	dialector := postgres.Open(cfg.DSN)

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:      logger.NewGormLogger(),
		PrepareStmt: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)

	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database connection check failed: %w", err)
	}

	log.Info("Database connection established successfully.")
	return db, nil
}

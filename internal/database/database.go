package database

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/macormexico/sistema-pnc/internal/config"
	"github.com/macormexico/sistema-pnc/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connect opens the configured database (PostgreSQL or embedded SQLite) and
// tunes the connection pool.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.UsesSQLite() {
		dialector = sqlite.Open(cfg.SQLitePath)
	} else {
		dialector = postgres.Open(cfg.DSN())
	}

	db, err := Open(dialector)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	if cfg.UsesSQLite() {
		// SQLite serialises writers.
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(50)
		sqlDB.SetMaxIdleConns(25)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	}

	slog.Info("database connected", "driver", cfg.DBDriver)
	return db, nil
}

func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// MigrateShared runs AutoMigrate for the models every deployment needs.
func MigrateShared(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.SystemLog{},
	)
}

// MigrateModels runs AutoMigrate for arbitrary models (used by plugins).
func MigrateModels(db *gorm.DB, modelList []interface{}) error {
	if len(modelList) == 0 {
		return nil
	}
	return db.AutoMigrate(modelList...)
}

func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

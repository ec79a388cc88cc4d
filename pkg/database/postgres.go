package database

import (
	"fmt"
	"time"

	"github.com/Eursukkul/events-dashboard/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type PoolConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// History only sees one write per refresh, so the pool stays small.
var DefaultPool = PoolConfig{
	MaxOpenConns:    5,
	MaxIdleConns:    2,
	ConnMaxLifetime: 30 * time.Minute,
	ConnMaxIdleTime: 5 * time.Minute,
}

// OpenHistory connects to the refresh-history database and migrates it.
func OpenHistory(dsn string, pool PoolConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to history database: %w", err)
	}

	if err := Configure(db, pool); err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func Configure(db *gorm.DB, pool PoolConfig) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.ConnMaxIdleTime)
	return nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.RefreshRun{}); err != nil {
		return fmt.Errorf("migrate refresh_runs: %w", err)
	}
	return nil
}

// Package database opens the gorm connection used by every repository.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	appConfig "github.com/festy23/nations_league/internal/config"
	"github.com/festy23/nations_league/internal/database/config"
	"github.com/festy23/nations_league/internal/database/pool"
	"github.com/festy23/nations_league/pkg/retry"
)

var errNilDB = errors.New("database connection is nil")

// Open connects with cfg, retrying while Postgres is still starting, then
// sizes the pool for the driver. An empty driver means Postgres.
// DB_CONNECT_TIMEOUT (default 2m) bounds the whole attempt.
func Open(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if cfg.Driver == "" {
		cfg.Driver = config.DriverPostgres
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, appConfig.GetEnvDuration("DB_CONNECT_TIMEOUT", 2*time.Minute))
	defer cancel()

	gormCfg := &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Warn),
		TranslateError: true,
	}
	dial := sqlite.Open(cfg.SQLitePath)
	if cfg.Driver == config.DriverPostgres {
		dial = postgres.Open(config.BuildDSN(cfg))
	}

	db, err := retry.DoWithResult(ctx, config.LoadRetryConfigFromEnv(), func() (*gorm.DB, error) {
		return gorm.Open(dial, gormCfg)
	})
	if err != nil {
		return nil, config.SanitizeError(err, cfg)
	}

	if err := pool.Apply(db, pool.ForDriver(cfg.Driver)); err != nil {
		_ = Close(db)
		return nil, fmt.Errorf("failed to setup connection pool: %w", err)
	}
	return db, nil
}

func sqlHandle(db *gorm.DB) (*sql.DB, error) {
	if db == nil {
		return nil, errNilDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB, nil
}

// HealthCheck pings the database.
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := sqlHandle(db)
	if err != nil {
		return err
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// Close closes the pool. A nil db is a no-op.
func Close(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := sqlHandle(db)
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}
	return nil
}

// GetStats returns connection pool statistics.
func GetStats(db *gorm.DB) (*sql.DBStats, error) {
	sqlDB, err := sqlHandle(db)
	if err != nil {
		return nil, err
	}
	stats := sqlDB.Stats()
	return &stats, nil
}

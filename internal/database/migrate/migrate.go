// Package migrate brings the league schema up to date.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/database/config"
)

var errNilDB = errors.New("database connection is nil")

// GetMigrationsPath returns MIGRATIONS_PATH, "migrations" by default.
func GetMigrationsPath() string {
	return config.GetEnv("MIGRATIONS_PATH", "migrations")
}

// Run prepares the schema for driver. Postgres applies the SQL files under
// GetMigrationsPath; SQLite is auto-migrated from models.
func Run(db *gorm.DB, driver string, models ...any) error {
	if db == nil {
		return errNilDB
	}
	switch driver {
	case config.DriverPostgres:
		return Migrate(db)
	case config.DriverSQLite:
		if err := db.AutoMigrate(models...); err != nil {
			return fmt.Errorf("failed to auto-migrate models: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported driver for migrations: %s", driver)
	}
}

// Migrate applies every pending Postgres migration. Up to date is not an error.
func Migrate(db *gorm.DB) error {
	m, err := newMigrator(db)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}

// Version reports the applied Postgres schema version and whether the last
// migration left it dirty. A fresh database reports version 0.
func Version(db *gorm.DB) (uint, bool, error) {
	m, err := newMigrator(db)
	if err != nil {
		return 0, false, err
	}
	v, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, dirty, nil
}

func newMigrator(db *gorm.DB) (*migrate.Migrate, error) {
	if db == nil {
		return nil, errNilDB
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	dir, err := filepath.Abs(GetMigrationsPath())
	if err != nil {
		return nil, fmt.Errorf("failed to resolve migrations path: %w", err)
	}
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("migrations directory does not exist: %s", dir)
	}

	driver, err := postgres.WithInstance(sqlDB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres driver: %w", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+dir, "postgres", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// Package pool sizes the sql.DB connection pool behind gorm.
package pool

import (
	"errors"
	"fmt"
	"time"

	appConfig "github.com/festy23/nations_league/internal/config"
	dbConfig "github.com/festy23/nations_league/internal/database/config"
	"gorm.io/gorm"
)

// Settings is the pool shape applied to the underlying sql.DB.
type Settings struct {
	MaxOpen     int
	MaxIdle     int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
}

var (
	errNoOpenConns  = errors.New("DB_MAX_OPEN_CONNS must be greater than 0")
	errNegativeIdle = errors.New("DB_MAX_IDLE_CONNS must be non-negative")
)

// ForDriver returns the pool settings for a driver. SQLite always gets a
// single connection: an in-memory database is private to its connection and
// writers are serialized anyway. Postgres reads DB_MAX_OPEN_CONNS,
// DB_MAX_IDLE_CONNS, DB_CONN_MAX_LIFETIME and DB_CONN_MAX_IDLE_TIME.
func ForDriver(driver string) Settings {
	if driver == dbConfig.DriverSQLite {
		return Settings{MaxOpen: 1, MaxIdle: 1}
	}
	return Settings{
		MaxOpen:     appConfig.GetEnvInt("DB_MAX_OPEN_CONNS", 20),
		MaxIdle:     appConfig.GetEnvInt("DB_MAX_IDLE_CONNS", 5),
		MaxLifetime: appConfig.GetEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		MaxIdleTime: appConfig.GetEnvDuration("DB_CONN_MAX_IDLE_TIME", 5*time.Minute),
	}
}

// Validate rejects settings sql.DB would silently clamp.
func (s Settings) Validate() error {
	switch {
	case s.MaxOpen <= 0:
		return errNoOpenConns
	case s.MaxIdle < 0:
		return errNegativeIdle
	case s.MaxIdle > s.MaxOpen:
		return fmt.Errorf("idle connections (%d) exceed open connections (%d)", s.MaxIdle, s.MaxOpen)
	}
	return nil
}

// Apply validates s and configures db with it.
func Apply(db *gorm.DB, s Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(s.MaxOpen)
	sqlDB.SetMaxIdleConns(s.MaxIdle)
	sqlDB.SetConnMaxLifetime(s.MaxLifetime)
	sqlDB.SetConnMaxIdleTime(s.MaxIdleTime)
	return nil
}

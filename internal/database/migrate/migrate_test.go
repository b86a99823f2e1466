package migrate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/festy23/nations_league/internal/database/config"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func TestGetMigrationsPath(t *testing.T) {
	t.Setenv("MIGRATIONS_PATH", "")
	assert.Equal(t, "migrations", GetMigrationsPath())

	t.Setenv("MIGRATIONS_PATH", "deploy/migrations")
	assert.Equal(t, "deploy/migrations", GetMigrationsPath())
}

func TestMigrationFilesArePaired(t *testing.T) {
	ups, err := filepath.Glob("../../../migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := up[:len(up)-len(".up.sql")] + ".down.sql"
		_, err := os.Stat(down)
		assert.NoError(t, err, "missing down migration for %s", filepath.Base(up))
	}
}

func TestRun(t *testing.T) {
	type fixture struct {
		ID      string `gorm:"primaryKey"`
		Country string
	}

	t.Run("sqlite auto-migrates models", func(t *testing.T) {
		db := openSQLite(t)
		require.NoError(t, Run(db, config.DriverSQLite, &fixture{}))
		assert.True(t, db.Migrator().HasTable(&fixture{}))
	})

	t.Run("nil database", func(t *testing.T) {
		assert.ErrorIs(t, Run(nil, config.DriverSQLite, &fixture{}), errNilDB)
	})

	t.Run("postgres needs the migrations directory", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", filepath.Join(t.TempDir(), "absent"))
		err := Run(openSQLite(t), config.DriverPostgres)
		assert.ErrorContains(t, err, "migrations directory does not exist")
	})

	t.Run("postgres driver rejects a sqlite connection", func(t *testing.T) {
		t.Setenv("MIGRATIONS_PATH", t.TempDir())
		assert.Error(t, Run(openSQLite(t), config.DriverPostgres))
	})

	t.Run("unknown driver", func(t *testing.T) {
		assert.ErrorContains(t, Run(openSQLite(t), "oracle"), "unsupported driver")
	})
}

func TestVersion_NilDatabase(t *testing.T) {
	_, _, err := Version(nil)
	assert.ErrorIs(t, err, errNilDB)
}

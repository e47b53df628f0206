package db

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"gorm.io/gorm"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFS embed.FS

// Migrate applies all pending schema migrations for the connected dialect.
// Schema changes ship as versioned SQL files embedded in the binary; the
// schema is never created implicitly at query time.
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return fmt.Errorf("database handle is nil")
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}

	dialect := gdb.Dialector.Name()

	var (
		driver database.Driver
		dir    string
	)
	switch dialect {
	case "postgres":
		driver, err = migratepg.WithInstance(sqlDB, &migratepg.Config{})
		dir = "migrations/postgres"
	case "sqlite":
		driver, err = migratesqlite.WithInstance(sqlDB, &migratesqlite.Config{})
		dir = "migrations/sqlite"
	default:
		return fmt.Errorf("no migrations for dialect %q", dialect)
	}
	if err != nil {
		return fmt.Errorf("prepare migration driver: %w", err)
	}

	source, err := iofs.New(migrationFS, dir)
	if err != nil {
		return fmt.Errorf("load migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dialect, driver)
	if err != nil {
		return fmt.Errorf("prepare migrations: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

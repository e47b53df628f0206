package db

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"recipebook/internal/config"
)

var testDBSeq atomic.Int64

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared&_fk=1", testDBSeq.Add(1))
	database, err := Open(config.DatabaseConfig{URL: dsn})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return database
}

func TestOpenRequiresURL(t *testing.T) {
	t.Parallel()

	database, err := Open(config.DatabaseConfig{URL: "  "})
	if err == nil {
		t.Fatal("expected error when database URL is empty")
	}
	if database != nil {
		t.Fatal("expected returned db handle to be nil on error")
	}
}

func TestDialectorSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url  string
		want string
	}{
		{"postgres://localhost/recipes", "postgres"},
		{"postgresql://localhost/recipes", "postgres"},
		{"file:recipes.db?_fk=1", "sqlite"},
		{"recipes.db", "sqlite"},
	}

	for _, tt := range tests {
		if got := dialectorFor(tt.url).Name(); got != tt.want {
			t.Fatalf("dialectorFor(%q).Name() = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestMigrateRejectsNilDatabase(t *testing.T) {
	t.Parallel()

	if err := Migrate(nil); err == nil {
		t.Fatal("expected error when database handle is nil")
	}
}

func TestMigrateCreatesSchema(t *testing.T) {
	database := openTestDB(t)

	if err := Migrate(database); err != nil {
		t.Fatalf("migrate sqlite database: %v", err)
	}

	for _, table := range []string{"recipes", "ingredients", "recipe_ingredient"} {
		var count int64
		err := database.Raw(
			"SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table,
		).Scan(&count).Error
		if err != nil {
			t.Fatalf("inspect schema: %v", err)
		}
		if count != 1 {
			t.Fatalf("expected table %q to exist after migration", table)
		}
	}

	// A second run is a no-op, not an error.
	if err := Migrate(database); err != nil {
		t.Fatalf("re-running migrations: %v", err)
	}
}

func TestMigrateEnforcesIngredientUniqueness(t *testing.T) {
	database := openTestDB(t)

	if err := Migrate(database); err != nil {
		t.Fatalf("migrate sqlite database: %v", err)
	}

	if err := database.Exec("INSERT INTO ingredients (name) VALUES ('Tomato')").Error; err != nil {
		t.Fatalf("insert ingredient: %v", err)
	}
	if err := database.Exec("INSERT INTO ingredients (name) VALUES ('Tomato')").Error; err == nil {
		t.Fatal("expected unique constraint violation for duplicate ingredient name")
	}
}

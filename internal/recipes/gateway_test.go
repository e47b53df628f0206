package recipes

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"gorm.io/gorm"

	"recipebook/internal/config"
	appdb "recipebook/internal/db"
	"recipebook/models"
)

var testDBSeq atomic.Int64

func newTestGateway(t *testing.T) (*Gateway, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:gateway%d?mode=memory&cache=shared&_fk=1", testDBSeq.Add(1))
	return newGatewayWithDSN(t, dsn)
}

func newGatewayWithDSN(t *testing.T, dsn string) (*Gateway, *gorm.DB) {
	t.Helper()
	database, err := appdb.Open(config.DatabaseConfig{URL: dsn})
	if err != nil {
		t.Fatalf("open sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := database.DB(); err == nil {
			sqlDB.Close()
		}
	})
	if err := appdb.Migrate(database); err != nil {
		t.Fatalf("migrate schema: %v", err)
	}
	return NewGateway(database), database
}

func countRows(t *testing.T, database *gorm.DB, query string, args ...any) int64 {
	t.Helper()
	var count int64
	if err := database.Raw(query, args...).Scan(&count).Error; err != nil {
		t.Fatalf("count query %q: %v", query, err)
	}
	return count
}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }

func TestCreateAssignsIDAndResolvesIngredients(t *testing.T) {
	gateway, _ := newTestGateway(t)
	ctx := context.Background()

	created, err := gateway.Create(ctx, Input{
		Title:           "Spaghetti Bolognese",
		Description:     strPtr("A classic Italian pasta dish"),
		Rating:          floatPtr(4.5),
		IngredientNames: []string{"Spaghetti", "Tomato"},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected store-assigned recipe id")
	}
	if len(created.Ingredients) != 2 {
		t.Fatalf("expected 2 resolved ingredients, got %d", len(created.Ingredients))
	}
	for _, ingredient := range created.Ingredients {
		if ingredient.ID == 0 {
			t.Fatalf("expected store-assigned id for ingredient %q", ingredient.Name)
		}
	}

	fetched, err := gateway.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.Title != created.Title {
		t.Fatalf("fetched title = %q, want %q", fetched.Title, created.Title)
	}
	if fetched.Description == nil || *fetched.Description != "A classic Italian pasta dish" {
		t.Fatalf("fetched description = %v", fetched.Description)
	}
	if fetched.Rating == nil || *fetched.Rating != 4.5 {
		t.Fatalf("fetched rating = %v", fetched.Rating)
	}
	if len(fetched.Ingredients) != 2 {
		t.Fatalf("expected 2 ingredients on refetch, got %d", len(fetched.Ingredients))
	}
}

func TestIngredientRowsAreSharedAcrossRecipes(t *testing.T) {
	gateway, database := newTestGateway(t)
	ctx := context.Background()

	first, err := gateway.Create(ctx, Input{Title: "Salad", IngredientNames: []string{"Tomato", "Onion"}})
	if err != nil {
		t.Fatalf("create first recipe: %v", err)
	}
	second, err := gateway.Create(ctx, Input{Title: "Salsa", IngredientNames: []string{"Tomato", "Onion"}})
	if err != nil {
		t.Fatalf("create second recipe: %v", err)
	}

	if got := countRows(t, database, "SELECT count(*) FROM ingredients"); got != 2 {
		t.Fatalf("expected 2 ingredient rows, got %d", got)
	}

	ids := func(recipe *models.Recipe) map[string]uint {
		byName := make(map[string]uint, len(recipe.Ingredients))
		for _, ingredient := range recipe.Ingredients {
			byName[ingredient.Name] = ingredient.ID
		}
		return byName
	}
	firstIDs, secondIDs := ids(first), ids(second)
	for _, name := range []string{"Tomato", "Onion"} {
		if firstIDs[name] == 0 || firstIDs[name] != secondIDs[name] {
			t.Fatalf("expected %q to be shared, got %d vs %d", name, firstIDs[name], secondIDs[name])
		}
	}
}

func TestCreateDeduplicatesNamesWithinRequest(t *testing.T) {
	gateway, database := newTestGateway(t)

	created, err := gateway.Create(context.Background(), Input{
		Title:           "Seasoning",
		IngredientNames: []string{"Salt", "Salt", "Pepper", ""},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if len(created.Ingredients) != 2 {
		t.Fatalf("expected duplicates to collapse to 2 ingredients, got %d", len(created.Ingredients))
	}
	if got := countRows(t, database, "SELECT count(*) FROM recipe_ingredient WHERE recipe_id = ?", created.ID); got != 2 {
		t.Fatalf("expected 2 association rows, got %d", got)
	}
}

func TestReplaceSwapsAssociationSet(t *testing.T) {
	gateway, database := newTestGateway(t)
	ctx := context.Background()

	created, err := gateway.Create(ctx, Input{Title: "Stew", IngredientNames: []string{"A", "B"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := gateway.Replace(ctx, created.ID, Input{Title: "Stew", IngredientNames: []string{"B", "C"}})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	names := make(map[string]bool, len(updated.Ingredients))
	for _, ingredient := range updated.Ingredients {
		names[ingredient.Name] = true
	}
	if len(names) != 2 || !names["B"] || !names["C"] {
		t.Fatalf("expected ingredient set {B, C}, got %v", names)
	}

	if got := countRows(t, database, "SELECT count(*) FROM recipe_ingredient WHERE recipe_id = ?", created.ID); got != 2 {
		t.Fatalf("expected 2 association rows after replace, got %d", got)
	}
	// A is orphaned but its catalog row survives.
	if got := countRows(t, database, "SELECT count(*) FROM ingredients WHERE name = 'A'"); got != 1 {
		t.Fatalf("expected orphaned ingredient A to remain, got %d rows", got)
	}
}

func TestReplaceClearsOptionalFields(t *testing.T) {
	gateway, _ := newTestGateway(t)
	ctx := context.Background()

	created, err := gateway.Create(ctx, Input{
		Title:        "Toast",
		Description:  strPtr("buttered"),
		Instructions: strPtr("toast the bread"),
		Rating:       floatPtr(3),
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := gateway.Replace(ctx, created.ID, Input{Title: "Plain Toast"})
	if err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	if updated.Title != "Plain Toast" {
		t.Fatalf("title = %q, want %q", updated.Title, "Plain Toast")
	}
	if updated.Description != nil || updated.Instructions != nil || updated.Rating != nil {
		t.Fatalf("expected optional fields cleared, got %+v", updated)
	}

	fetched, err := gateway.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if fetched.Description != nil || fetched.Instructions != nil || fetched.Rating != nil {
		t.Fatalf("expected cleared fields to persist as NULL, got %+v", fetched)
	}
}

func TestReplaceMissingRecipe(t *testing.T) {
	gateway, _ := newTestGateway(t)

	_, err := gateway.Replace(context.Background(), 4242, Input{Title: "Ghost"})
	if err != ErrNotFound {
		t.Fatalf("Replace() error = %v, want ErrNotFound", err)
	}
}

func TestDeleteDetachesAssociations(t *testing.T) {
	gateway, database := newTestGateway(t)
	ctx := context.Background()

	created, err := gateway.Create(ctx, Input{Title: "Soup", IngredientNames: []string{"Leek", "Potato"}})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := gateway.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if got := countRows(t, database, "SELECT count(*) FROM recipe_ingredient WHERE recipe_id = ?", created.ID); got != 0 {
		t.Fatalf("expected no association rows after delete, got %d", got)
	}
	if got := countRows(t, database, "SELECT count(*) FROM ingredients"); got != 2 {
		t.Fatalf("expected ingredient catalog to survive delete, got %d rows", got)
	}

	if _, err := gateway.Get(ctx, created.ID); err != ErrNotFound {
		t.Fatalf("Get() after delete = %v, want ErrNotFound", err)
	}
}

func TestDeleteMissingRecipe(t *testing.T) {
	gateway, _ := newTestGateway(t)

	if err := gateway.Delete(context.Background(), 4242); err != ErrNotFound {
		t.Fatalf("Delete() error = %v, want ErrNotFound", err)
	}
}

func TestListEmptyStore(t *testing.T) {
	gateway, _ := newTestGateway(t)

	listed, err := gateway.List(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 0 {
		t.Fatalf("expected empty result, got %d recipes", len(listed))
	}
}

func TestListSkipAndLimit(t *testing.T) {
	gateway, _ := newTestGateway(t)
	ctx := context.Background()

	for _, title := range []string{"First", "Second", "Third"} {
		if _, err := gateway.Create(ctx, Input{Title: title}); err != nil {
			t.Fatalf("create %q: %v", title, err)
		}
	}

	listed, err := gateway.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(listed) != 1 || listed[0].Title != "Second" {
		t.Fatalf("List(1, 1) = %+v, want the second recipe", listed)
	}
}

func TestConcurrentCreatesShareNewIngredient(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "recipes.db") + "?_fk=1&_busy_timeout=10000"
	gateway, database := newGatewayWithDSN(t, dsn)
	ctx := context.Background()

	var (
		wg        sync.WaitGroup
		successes atomic.Int64
	)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, err := gateway.Create(ctx, Input{
				Title:           fmt.Sprintf("Aioli %d", n),
				IngredientNames: []string{"Garlic"},
			})
			if err == nil {
				successes.Add(1)
			}
		}(i)
	}
	wg.Wait()

	if successes.Load() == 0 {
		t.Fatal("expected at least one concurrent create to succeed")
	}
	if got := countRows(t, database, "SELECT count(*) FROM ingredients WHERE name = 'Garlic'"); got != 1 {
		t.Fatalf("expected a single Garlic row under concurrent writers, got %d", got)
	}
}

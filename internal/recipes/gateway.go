// Package recipes implements the persistence gateway for recipe and
// ingredient rows. Every write runs inside a single transaction so a failed
// operation leaves no partial state behind.
package recipes

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	applog "recipebook/internal/log"
	"recipebook/models"
)

// ErrNotFound reports that no recipe exists with the requested id. It is an
// expected outcome, not a storage failure, and is never logged as an error.
var ErrNotFound = errors.New("recipe not found")

// Input carries the caller-supplied fields for creating or replacing a
// recipe. Nil optional fields clear the stored value; IngredientNames is
// resolved with lookup-or-create semantics.
type Input struct {
	Title           string
	Description     *string
	Instructions    *string
	Rating          *float64
	IngredientNames []string
}

// Gateway owns the lifecycle of recipe rows, lazily-created ingredient rows,
// and the association rows between them. It is constructed once and injected
// into its consumers; each operation binds to the caller's context so the
// pooled connection is scoped to one request.
type Gateway struct {
	db *gorm.DB
}

// NewGateway wraps the given database handle.
func NewGateway(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}

// Create stores a new recipe with its resolved ingredient set. The recipe
// row, any newly created ingredient rows, and all association rows commit
// together or not at all.
func (g *Gateway) Create(ctx context.Context, input Input) (*models.Recipe, error) {
	var recipe models.Recipe
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ingredients, err := lookupOrCreate(tx, input.IngredientNames)
		if err != nil {
			return err
		}

		recipe = models.Recipe{
			Title:        input.Title,
			Description:  input.Description,
			Instructions: input.Instructions,
			Rating:       input.Rating,
			Ingredients:  ingredients,
		}
		if err := tx.Create(&recipe).Error; err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		return nil
	})
	if err != nil {
		applog.Error(ctx, "recipe create failed", "error", err, "title", input.Title)
		return nil, err
	}
	return &recipe, nil
}

// List returns recipes in primary-key order, skipping skip rows and
// returning at most limit. An empty store yields an empty slice.
func (g *Gateway) List(ctx context.Context, skip, limit int) ([]models.Recipe, error) {
	recipes := make([]models.Recipe, 0, limit)
	err := g.db.WithContext(ctx).
		Preload("Ingredients").
		Order("recipes.id").
		Offset(skip).
		Limit(limit).
		Find(&recipes).Error
	if err != nil {
		applog.Error(ctx, "recipe list failed", "error", err, "skip", skip, "limit", limit)
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// Get loads one recipe with its resolved ingredients.
func (g *Gateway) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := g.db.WithContext(ctx).Preload("Ingredients").First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		applog.Error(ctx, "recipe lookup failed", "error", err, "id", id)
		return nil, fmt.Errorf("get recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// Replace overwrites every scalar field of an existing recipe, clearing
// optional fields the input leaves nil, and swaps the entire association set
// for one built from input.IngredientNames. Atomic as a whole.
func (g *Gateway) Replace(ctx context.Context, id uint, input Input) (*models.Recipe, error) {
	var updated models.Recipe
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load recipe %d: %w", id, err)
		}

		updates := map[string]any{
			"title":        input.Title,
			"description":  nullable(input.Description),
			"instructions": nullable(input.Instructions),
			"rating":       nullable(input.Rating),
		}
		if err := tx.Model(&recipe).Updates(updates).Error; err != nil {
			return fmt.Errorf("update recipe %d: %w", id, err)
		}

		ingredients, err := lookupOrCreate(tx, input.IngredientNames)
		if err != nil {
			return err
		}
		if err := replaceIngredients(tx, &recipe, ingredients); err != nil {
			return fmt.Errorf("replace ingredients for recipe %d: %w", id, err)
		}

		if err := tx.Preload("Ingredients").First(&updated, id).Error; err != nil {
			return fmt.Errorf("reload recipe %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		applog.Error(ctx, "recipe replace failed", "error", err, "id", id)
		return nil, err
	}
	return &updated, nil
}

// Delete removes the recipe row and all its association rows. Ingredient
// rows stay behind even when they become unreferenced.
func (g *Gateway) Delete(ctx context.Context, id uint) error {
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("load recipe %d: %w", id, err)
		}

		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return fmt.Errorf("detach ingredients for recipe %d: %w", id, err)
		}
		if err := tx.Delete(&recipe).Error; err != nil {
			return fmt.Errorf("delete recipe %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		applog.Error(ctx, "recipe delete failed", "error", err, "id", id)
		return err
	}
	return nil
}

// lookupOrCreate resolves each name to an ingredient row, creating rows for
// names not seen before. Names are matched exactly and deduplicated so the
// association set stays a true set; the unique index on ingredients.name is
// the final authority under concurrent writers.
func lookupOrCreate(tx *gorm.DB, names []string) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		var ingredient models.Ingredient
		err := tx.Where(models.Ingredient{Name: name}).FirstOrCreate(&ingredient).Error
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", name, err)
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}

func replaceIngredients(tx *gorm.DB, recipe *models.Recipe, ingredients []models.Ingredient) error {
	assoc := tx.Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		return assoc.Clear()
	}
	return assoc.Replace(ingredients)
}

func nullable[T any](v *T) any {
	if v == nil {
		return nil
	}
	return *v
}

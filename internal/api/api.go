// Package api defines the wire contracts exchanged over HTTP. The server
// handlers and the terminal client share these shapes so the JSON surface is
// spelled out in one place instead of being derived from storage structs.
package api

// RecipeInput is the request body for creating or replacing a recipe.
// Optional fields are pointers; an update overwrites every field, so an
// omitted optional field clears the stored value.
type RecipeInput struct {
	Title           string   `json:"title"`
	Description     *string  `json:"description"`
	Instructions    *string  `json:"instructions"`
	Rating          *float64 `json:"rating"`
	IngredientNames []string `json:"ingredient_names"`
}

// Ingredient is the response shape of a stored ingredient.
type Ingredient struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Recipe is the response shape of a stored recipe with its resolved
// ingredients.
type Recipe struct {
	ID           uint         `json:"id"`
	Title        string       `json:"title"`
	Description  *string      `json:"description"`
	Instructions *string      `json:"instructions"`
	Rating       *float64     `json:"rating"`
	Ingredients  []Ingredient `json:"ingredients"`
}

// Deletion is the confirmation body returned after a successful delete.
type Deletion struct {
	Detail string `json:"detail"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Error string `json:"error"`
}

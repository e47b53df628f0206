package client

import "recipebook/internal/api"

// The client speaks the same wire contracts the server publishes.
type (
	RecipeInput = api.RecipeInput
	Recipe      = api.Recipe
	Ingredient  = api.Ingredient
	Deletion    = api.Deletion

	errorBody = api.Error
)

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"recipebook/internal/api"
	applog "recipebook/internal/log"
	"recipebook/models"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, api.Error{Error: message})
}

func projectRecipe(recipe models.Recipe) api.Recipe {
	ingredients := make([]api.Ingredient, 0, len(recipe.Ingredients))
	for _, ingredient := range recipe.Ingredients {
		ingredients = append(ingredients, api.Ingredient{ID: ingredient.ID, Name: ingredient.Name})
	}
	return api.Recipe{
		ID:           recipe.ID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Instructions: recipe.Instructions,
		Rating:       recipe.Rating,
		Ingredients:  ingredients,
	}
}

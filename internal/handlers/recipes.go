package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"recipebook/internal/api"
	applog "recipebook/internal/log"
	"recipebook/internal/recipes"
)

const defaultListLimit = 10

// Recipes serves the REST surface for recipe records. The gateway is
// injected at construction; each request runs its own unit of work bound to
// the request context.
type Recipes struct {
	store *recipes.Gateway
}

// NewRecipes builds the recipe handlers around the given gateway.
func NewRecipes(store *recipes.Gateway) *Recipes {
	return &Recipes{store: store}
}

// Create handles POST /recipes.
func (h *Recipes) Create(w http.ResponseWriter, r *http.Request) {
	input, ok := decodeRecipeInput(w, r)
	if !ok {
		return
	}

	created, err := h.store.Create(r.Context(), input)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "unable to create recipe")
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*created))
}

// List handles GET /recipes with optional skip and limit parameters.
func (h *Recipes) List(w http.ResponseWriter, r *http.Request) {
	skip, ok := queryInt(w, r, "skip", 0, 0)
	if !ok {
		return
	}
	limit, ok := queryInt(w, r, "limit", defaultListLimit, 1)
	if !ok {
		return
	}

	listed, err := h.store.List(r.Context(), skip, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "unable to list recipes")
		return
	}

	responses := make([]api.Recipe, 0, len(listed))
	for _, recipe := range listed {
		responses = append(responses, projectRecipe(recipe))
	}
	writeJSON(w, http.StatusOK, responses)
}

// Show handles GET /recipes/{id}.
func (h *Recipes) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	recipe, err := h.store.Get(r.Context(), id)
	if err != nil {
		respondRecipeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*recipe))
}

// Update handles PUT /recipes/{id}. The update is a full overwrite, not a
// patch: every scalar field and the entire ingredient set are replaced.
func (h *Recipes) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}
	input, ok := decodeRecipeInput(w, r)
	if !ok {
		return
	}

	updated, err := h.store.Replace(r.Context(), id, input)
	if err != nil {
		respondRecipeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projectRecipe(*updated))
}

// Delete handles DELETE /recipes/{id}.
func (h *Recipes) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := recipeID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		respondRecipeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Deletion{Detail: "Recipe deleted"})
}

func decodeRecipeInput(w http.ResponseWriter, r *http.Request) (recipes.Input, bool) {
	var payload api.RecipeInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		applog.Debug(r.Context(), "malformed recipe payload", "error", err)
		writeJSONError(w, http.StatusUnprocessableEntity, "invalid request payload")
		return recipes.Input{}, false
	}
	if strings.TrimSpace(payload.Title) == "" {
		writeJSONError(w, http.StatusUnprocessableEntity, "title is required")
		return recipes.Input{}, false
	}

	return recipes.Input{
		Title:           payload.Title,
		Description:     payload.Description,
		Instructions:    payload.Instructions,
		Rating:          payload.Rating,
		IngredientNames: payload.IngredientNames,
	}, true
}

func recipeID(w http.ResponseWriter, r *http.Request) (uint, bool) {
	raw := r.PathValue("id")
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		applog.Debug(r.Context(), "invalid recipe identifier", "identifier", raw, "error", err)
		writeJSONError(w, http.StatusNotFound, "recipe not found")
		return 0, false
	}
	return uint(value), true
}

func queryInt(w http.ResponseWriter, r *http.Request, name string, fallback, min int) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < min {
		writeJSONError(w, http.StatusUnprocessableEntity, name+" must be an integer >= "+strconv.Itoa(min))
		return 0, false
	}
	return value, true
}

func respondRecipeError(w http.ResponseWriter, err error) {
	if errors.Is(err, recipes.ErrNotFound) {
		writeJSONError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSONError(w, http.StatusInternalServerError, "unable to process recipe request")
}

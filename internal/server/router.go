package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"recipebook/internal/handlers"
)

func newRouter(recipeHandlers *handlers.Recipes) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", handlers.Welcome)
	mux.HandleFunc("GET /help", handlers.Help)
	mux.HandleFunc("GET /healthz", handlers.Health)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("POST /recipes", recipeHandlers.Create)
	mux.HandleFunc("GET /recipes", recipeHandlers.List)
	mux.HandleFunc("GET /recipes/{id}", recipeHandlers.Show)
	mux.HandleFunc("PUT /recipes/{id}", recipeHandlers.Update)
	mux.HandleFunc("DELETE /recipes/{id}", recipeHandlers.Delete)
	return mux
}

package handlers

import "net/http"

const welcomePage = `<html>
  <head><title>Recipe Service - Welcome</title></head>
  <body>
    <h1>Welcome to the Recipe Service</h1>
    <p>Manage and discover recipes over a small JSON API.</p>
    <p>Visit /help for a getting-started guide.</p>
  </body>
</html>
`

// Welcome serves the root page with pointers to the rest of the API.
func Welcome(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(welcomePage))
}

// Help serves a JSON getting-started guide with the endpoint map and a
// sample payload.
func Help(w http.ResponseWriter, r *http.Request) {
	guide := map[string]any{
		"Endpoints": map[string]string{
			"GET /recipes":         "Retrieve a list of recipes.",
			"POST /recipes":        "Create a new recipe. (Requires JSON payload.)",
			"GET /recipes/{id}":    "Retrieve details of a specific recipe.",
			"PUT /recipes/{id}":    "Update an existing recipe.",
			"DELETE /recipes/{id}": "Delete a recipe.",
			"GET /help":            "View this help message.",
		},
		"Sample POST Payload for /recipes": map[string]any{
			"title":        "Spaghetti Bolognese",
			"description":  "A classic Italian pasta dish",
			"instructions": "Boil pasta. Prepare sauce. Combine and serve.",
			"rating":       4.5,
			"ingredient_names": []string{
				"Spaghetti",
				"Tomato",
				"Ground Beef",
				"Onion",
				"Garlic",
			},
		},
	}
	writeJSON(w, http.StatusOK, guide)
}

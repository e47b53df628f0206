// Package menu drives the interactive terminal session of the recipe client.
// It reads numbered choices from an input stream and renders results to an
// output stream, which keeps the loop testable without a real terminal.
package menu

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"recipebook/internal/client"
)

const banner = `Smart Recipe Client
1. Add a new recipe
2. View a recipe by ID
3. Update a recipe by ID
4. Delete a recipe by ID
5. List all recipes
6. Exit`

// Menu runs the interactive session against a recipe service client.
type Menu struct {
	api *client.Client
	in  *bufio.Scanner
	out io.Writer
}

// New wires a menu to a client and the streams it talks over.
func New(api *client.Client, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		api: api,
		in:  bufio.NewScanner(in),
		out: out,
	}
}

// Run loops over the menu until the user exits, the input stream ends, or the
// context is canceled.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(m.out, banner)
		choice, ok := m.prompt("Enter your choice (1-6): ")
		if !ok {
			return nil
		}

		switch choice {
		case "1":
			m.createRecipe(ctx)
		case "2":
			m.viewRecipe(ctx)
		case "3":
			m.updateRecipe(ctx)
		case "4":
			m.deleteRecipe(ctx)
		case "5":
			m.listRecipes(ctx)
		case "6":
			fmt.Fprintln(m.out, "Goodbye!")
			return nil
		default:
			fmt.Fprintln(m.out, "Invalid choice. Please try again.")
		}
		fmt.Fprintln(m.out, strings.Repeat("-", 50))
	}
}

// prompt reads one trimmed line; ok is false once the input stream ends.
func (m *Menu) prompt(label string) (string, bool) {
	fmt.Fprint(m.out, label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// promptRecipeID keeps asking until the user provides a positive integer or
// the input stream ends.
func (m *Menu) promptRecipeID(label string) (uint, bool) {
	for {
		raw, ok := m.prompt(label)
		if !ok {
			return 0, false
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			fmt.Fprintln(m.out, "Invalid ID entered.")
			continue
		}
		return uint(id), true
	}
}

// readRecipeInput collects the full recipe form. Blank optional fields stay
// nil so a server-side overwrite clears them.
func (m *Menu) readRecipeInput() (client.RecipeInput, bool) {
	var input client.RecipeInput

	title, ok := m.prompt("Title: ")
	if !ok {
		return input, false
	}
	input.Title = title

	description, ok := m.prompt("Description: ")
	if !ok {
		return input, false
	}
	if description != "" {
		input.Description = &description
	}

	instructions, ok := m.prompt("Instructions: ")
	if !ok {
		return input, false
	}
	if instructions != "" {
		input.Instructions = &instructions
	}

	ratingRaw, ok := m.prompt("Rating (e.g., 4.5): ")
	if !ok {
		return input, false
	}
	if ratingRaw != "" {
		rating, err := strconv.ParseFloat(ratingRaw, 64)
		if err != nil {
			fmt.Fprintln(m.out, "Invalid rating entered. Leaving rating unset.")
		} else {
			input.Rating = &rating
		}
	}

	ingredientsRaw, ok := m.prompt("Ingredient names (separate by commas): ")
	if !ok {
		return input, false
	}
	for _, name := range strings.Split(ingredientsRaw, ",") {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			input.IngredientNames = append(input.IngredientNames, trimmed)
		}
	}

	return input, true
}

func (m *Menu) createRecipe(ctx context.Context) {
	fmt.Fprintln(m.out, "Enter the details for your new recipe:")
	input, ok := m.readRecipeInput()
	if !ok {
		return
	}

	created, err := m.api.CreateRecipe(ctx, input)
	if err != nil {
		fmt.Fprintf(m.out, "Error creating recipe: %v\n", err)
		return
	}
	fmt.Fprintf(m.out, "Recipe created with ID: %d\n", created.ID)
	m.printRecipeDetails(created)
}

func (m *Menu) viewRecipe(ctx context.Context) {
	id, ok := m.promptRecipeID("Enter Recipe ID to view: ")
	if !ok {
		return
	}

	recipe, err := m.api.GetRecipe(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintf(m.out, "Recipe %d not found.\n", id)
			return
		}
		fmt.Fprintf(m.out, "Error retrieving recipe %d: %v\n", id, err)
		return
	}
	m.printRecipeDetails(recipe)
}

func (m *Menu) updateRecipe(ctx context.Context) {
	id, ok := m.promptRecipeID("Enter Recipe ID to update: ")
	if !ok {
		return
	}

	fmt.Fprintln(m.out, "Enter updated details for the recipe:")
	input, ok := m.readRecipeInput()
	if !ok {
		return
	}

	updated, err := m.api.UpdateRecipe(ctx, id, input)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintf(m.out, "Recipe %d not found.\n", id)
			return
		}
		fmt.Fprintf(m.out, "Error updating recipe %d: %v\n", id, err)
		return
	}
	fmt.Fprintf(m.out, "Updated recipe %d.\n", id)
	m.printRecipeDetails(updated)
}

func (m *Menu) deleteRecipe(ctx context.Context) {
	id, ok := m.promptRecipeID("Enter Recipe ID to delete: ")
	if !ok {
		return
	}

	confirmation, err := m.api.DeleteRecipe(ctx, id)
	if err != nil {
		if client.IsNotFound(err) {
			fmt.Fprintf(m.out, "Recipe %d not found.\n", id)
			return
		}
		fmt.Fprintf(m.out, "Error deleting recipe %d: %v\n", id, err)
		return
	}
	fmt.Fprintln(m.out, confirmation.Detail)
}

func (m *Menu) listRecipes(ctx context.Context) {
	recipes, err := m.api.ListRecipes(ctx, 0, 10)
	if err != nil {
		fmt.Fprintf(m.out, "Error listing recipes: %v\n", err)
		return
	}
	if len(recipes) == 0 {
		fmt.Fprintln(m.out, "No recipes found.")
		return
	}

	tw := tabwriter.NewWriter(m.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTitle\tRating")
	for _, recipe := range recipes {
		rating := "N/A"
		if recipe.Rating != nil {
			rating = strconv.FormatFloat(*recipe.Rating, 'f', -1, 64)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\n", recipe.ID, recipe.Title, rating)
	}
	tw.Flush()
}

func (m *Menu) printRecipeDetails(recipe *client.Recipe) {
	pretty, err := json.MarshalIndent(recipe, "", "  ")
	if err != nil {
		fmt.Fprintf(m.out, "Error rendering recipe: %v\n", err)
		return
	}
	fmt.Fprintln(m.out, string(pretty))
}

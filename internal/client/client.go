// Package client is a typed HTTP client for the recipe service. It performs
// no business logic; the server remains the authority on validation.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client issues JSON requests against a recipe service base URL.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New builds a Client for the given base URL, e.g. "http://127.0.0.1:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// APIError reports a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is an APIError with a 404 status.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound
}

// CreateRecipe posts a new recipe and returns the stored representation.
func (c *Client) CreateRecipe(ctx context.Context, input RecipeInput) (*Recipe, error) {
	var created Recipe
	if err := c.do(ctx, http.MethodPost, "/recipes", input, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// ListRecipes fetches a page of recipes.
func (c *Client) ListRecipes(ctx context.Context, skip, limit int) ([]Recipe, error) {
	query := url.Values{}
	query.Set("skip", strconv.Itoa(skip))
	query.Set("limit", strconv.Itoa(limit))

	var listed []Recipe
	if err := c.do(ctx, http.MethodGet, "/recipes?"+query.Encode(), nil, &listed); err != nil {
		return nil, err
	}
	return listed, nil
}

// GetRecipe fetches one recipe by id.
func (c *Client) GetRecipe(ctx context.Context, id uint) (*Recipe, error) {
	var recipe Recipe
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/recipes/%d", id), nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces a recipe wholesale and returns the stored result.
func (c *Client) UpdateRecipe(ctx context.Context, id uint, input RecipeInput) (*Recipe, error) {
	var updated Recipe
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/recipes/%d", id), input, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteRecipe removes a recipe and returns the confirmation body.
func (c *Client) DeleteRecipe(ctx context.Context, id uint) (*Deletion, error) {
	var confirmation Deletion
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/recipes/%d", id), nil, &confirmation); err != nil {
		return nil, err
	}
	return &confirmation, nil
}

// Help fetches the getting-started guide.
func (c *Client) Help(ctx context.Context) (map[string]any, error) {
	guide := map[string]any{}
	if err := c.do(ctx, http.MethodGet, "/help", nil, &guide); err != nil {
		return nil, err
	}
	return guide, nil
}

// Welcome checks that the service root is reachable.
func (c *Client) Welcome(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/", nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(data))
		var apiErr errorBody
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			message = apiErr.Error
		}
		return &APIError{StatusCode: resp.StatusCode, Message: message}
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

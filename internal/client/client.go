package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/hearthside/recipebook/internal/models"
)

// Client speaks the recipes API: JSON reads and multipart writes. It is the
// single network seam for the store, list view and form.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL (including the version
// prefix, e.g. "https://host/api/v1"). token may be empty for read-only use.
func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// APIError is a structured error body returned by the server.
type APIError struct {
	Status      int    `json:"-"`
	Err         string `json:"error"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Details     string `json:"details"`
}

func (e *APIError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("%s: %s", e.Title, e.Err)
	}
	return e.Err
}

// ListRecipes fetches the whole catalog.
func (c *Client) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/recipes", nil)
	if err != nil {
		return nil, err
	}
	var recipes []models.Recipe
	if err := c.do(req, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe fetches a single recipe by slug.
func (c *Client) GetRecipe(ctx context.Context, slug string) (*models.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/recipes/"+slug, nil)
	if err != nil {
		return nil, err
	}
	var recipe models.Recipe
	if err := c.do(req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe submits a new recipe as a multipart form.
func (c *Client) CreateRecipe(ctx context.Context, sub *Submission) (*models.Recipe, error) {
	return c.submit(ctx, "POST", c.baseURL+"/recipes", sub)
}

// UpdateRecipe replaces the recipe addressed by slug.
func (c *Client) UpdateRecipe(ctx context.Context, slug string, sub *Submission) (*models.Recipe, error) {
	return c.submit(ctx, "PUT", c.baseURL+"/recipes/"+slug, sub)
}

// DeleteRecipe removes the recipe addressed by slug.
func (c *Client) DeleteRecipe(ctx context.Context, slug string) error {
	req, err := http.NewRequestWithContext(ctx, "DELETE", c.baseURL+"/recipes/"+slug, nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

func (c *Client) submit(ctx context.Context, method, url string, sub *Submission) (*models.Recipe, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range sub.Fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if sub.ImageData != nil {
		part, err := writer.CreateFormFile("image", sub.ImageName)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(sub.ImageData); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	var recipe models.Recipe
	if err := c.do(req, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// do sends the request, decodes a success body into out, and converts error
// statuses into *APIError.
func (c *Client) do(req *http.Request, out interface{}) error {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Err == "" {
			apiErr.Err = fmt.Sprintf("unexpected status %d", resp.StatusCode)
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

package api

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/recipebook/internal/middleware"
	"github.com/hearthside/recipebook/internal/service"
)

// maxImageBytes caps uploads at the same 10MB limit the form enforces.
const maxImageBytes = 10 << 20

// RecipeHandler serves the slug-addressed recipes resource.
type RecipeHandler struct {
	recipes     service.IRecipeService
	authService middleware.TokenValidator
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(recipes service.IRecipeService, authService middleware.TokenValidator) *RecipeHandler {
	return &RecipeHandler{recipes: recipes, authService: authService}
}

// RegisterRoutes mounts the recipe routes. Reads are public; writes require
// a valid bearer token.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:slug", h.GetRecipe)
		recipes.POST("", middleware.AuthMiddleware(h.authService), h.CreateRecipe)
		recipes.PUT("/:slug", middleware.AuthMiddleware(h.authService), h.UpdateRecipe)
		recipes.DELETE("/:slug", middleware.AuthMiddleware(h.authService), h.DeleteRecipe)
	}
}

// ListRecipes returns every recipe with tags, ingredients and steps.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListRecipes(c.Request.Context())
	if err != nil {
		respondError(c, err, "Fetch Failed", "An unexpected error occurred while fetching recipes. Please try again.")
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns a single recipe by slug.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetRecipeBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondError(c, err, "Fetch Failed", "An unexpected error occurred while fetching the recipe. Please try again.")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// CreateRecipe accepts a multipart form payload and persists a new recipe.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	input, err := parseRecipeForm(c)
	if err != nil {
		respondError(c, err, "Creation Failed", "An unexpected error occurred while creating the recipe. Please try again.")
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), input)
	if err != nil {
		respondError(c, err, "Creation Failed", "An unexpected error occurred while creating the recipe. Please try again.")
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// UpdateRecipe replaces the recipe addressed by slug with the submitted
// payload.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	input, err := parseRecipeForm(c)
	if err != nil {
		respondError(c, err, "Update Failed", "An unexpected error occurred while updating the recipe. Please try again.")
		return
	}
	input.RemoveImage = c.PostForm("removeImage") == "true"

	recipe, err := h.recipes.UpdateRecipe(c.Request.Context(), c.Param("slug"), input)
	if err != nil {
		respondError(c, err, "Update Failed", "An unexpected error occurred while updating the recipe. Please try again.")
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe removes the recipe addressed by slug.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.DeleteRecipe(c.Request.Context(), c.Param("slug")); err != nil {
		respondError(c, err, "Deletion Failed", "An unexpected error occurred while deleting the recipe. Please try again.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// parseRecipeForm shapes a multipart submission into a service input.
// Ingredients arrive as a JSON array of {amount, name}; steps as a JSON
// array of strings (or legacy {order, content} objects); tags as a single
// comma-separated string.
func parseRecipeForm(c *gin.Context) (*service.RecipeInput, error) {
	input := &service.RecipeInput{
		Name:             c.PostForm("name"),
		ShortDescription: c.PostForm("shortDescription"),
		Description:      c.PostForm("description"),
		CookingTime:      c.PostForm("cookingTime"),
		Difficulty:       c.PostForm("difficulty"),
		ServingSize:      c.PostForm("servingSize"),
		Tags:             service.NormalizeTags(c.PostForm("tags")),
	}

	if err := json.Unmarshal([]byte(c.PostForm("ingredients")), &input.Ingredients); err != nil {
		return nil, &service.ValidationError{Field: "ingredients", Message: "ingredients must be a JSON array of {amount, name}"}
	}

	steps, err := decodeSteps(c.PostForm("steps"))
	if err != nil {
		return nil, err
	}
	input.Steps = steps

	file, err := c.FormFile("image")
	if err != nil && !errors.Is(err, http.ErrMissingFile) {
		return nil, err
	}
	if file != nil {
		img, err := readImage(file)
		if err != nil {
			return nil, err
		}
		input.Image = img
	}

	return input, nil
}

// decodeSteps accepts both wire shapes for steps and normalizes them to
// content strings in array order; the service assigns dense 1-based order.
func decodeSteps(raw string) ([]string, error) {
	var steps []string
	if err := json.Unmarshal([]byte(raw), &steps); err == nil {
		return steps, nil
	}

	var objects []struct {
		Order   int    `json:"order"`
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(raw), &objects); err != nil {
		return nil, &service.ValidationError{Field: "steps", Message: "steps must be a JSON array of strings"}
	}
	steps = make([]string, len(objects))
	for i, o := range objects {
		steps[i] = o.Content
	}
	return steps, nil
}

func readImage(file *multipart.FileHeader) (*service.ImageUpload, error) {
	if file.Size > maxImageBytes {
		return nil, &service.ValidationError{Field: "image", Message: "image must be at most 10MB"}
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = src.Close() }()

	data, err := io.ReadAll(io.LimitReader(src, maxImageBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > maxImageBytes {
		return nil, &service.ValidationError{Field: "image", Message: "image must be at most 10MB"}
	}

	return &service.ImageUpload{
		Data:        data,
		ContentType: file.Header.Get("Content-Type"),
	}, nil
}

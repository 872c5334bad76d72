package service

import (
	"context"

	"github.com/hearthside/recipebook/internal/models"
)

// ImageStore abstracts the object storage used for recipe images.
type ImageStore interface {
	// Upload stores image data and returns a publicly fetchable URL.
	Upload(ctx context.Context, data []byte, contentType string) (string, error)
	// Remove deletes a previously uploaded image by its public URL.
	Remove(ctx context.Context, url string) error
}

// IRecipeService defines the recipe catalog operations.
type IRecipeService interface {
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	GetRecipeBySlug(ctx context.Context, slug string) (*models.Recipe, error)
	CreateRecipe(ctx context.Context, input *RecipeInput) (*models.Recipe, error)
	UpdateRecipe(ctx context.Context, slug string, input *RecipeInput) (*models.Recipe, error)
	DeleteRecipe(ctx context.Context, slug string) error
}

package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hearthside/recipebook/internal/models"
)

const (
	listCacheKey = "recipes:all"
	listCacheTTL = 5 * time.Minute
)

// IngredientInput is one ingredient entry of a recipe payload.
type IngredientInput struct {
	Amount string `json:"amount"`
	Name   string `json:"name"`
}

// RecipeInput carries a full recipe payload for create and update. Both
// operations replace the owned collections wholesale; there is no diffing.
type RecipeInput struct {
	Name             string
	ShortDescription string
	Description      string
	CookingTime      string
	Difficulty       string
	ServingSize      string
	Ingredients      []IngredientInput
	Steps            []string
	Tags             []string

	// Image holds a new upload, if any. RemoveImage requests deletion of
	// the stored image and is distinct from "no change".
	Image       *ImageUpload
	RemoveImage bool
}

// ImageUpload is raw image data accepted from a form submission.
type ImageUpload struct {
	Data        []byte
	ContentType string
}

// RecipeService handles recipe catalog operations. Every write runs in a
// single transaction and invalidates the Redis list cache on success.
type RecipeService struct {
	db      *gorm.DB
	storage ImageStore
	cache   *redis.Client
}

// NewRecipeService creates a new RecipeService instance. storage and cache
// may be nil: without storage image uploads are rejected, without cache
// every list goes to the database.
func NewRecipeService(db *gorm.DB, storage ImageStore, cache *redis.Client) *RecipeService {
	return &RecipeService{db: db, storage: storage, cache: cache}
}

// ListRecipes returns all recipes with tags, ingredients and steps eagerly
// loaded. Filtering, search and pagination are client-side concerns.
func (s *RecipeService) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, listCacheKey).Bytes(); err == nil {
			var cached []models.Recipe
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached, nil
			}
		}
	}

	var recipes []models.Recipe
	if err := s.preloaded(s.db.WithContext(ctx)).Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(recipes); err == nil {
			if err := s.cache.Set(ctx, listCacheKey, data, listCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache recipe list: %v", err)
			}
		}
	}
	return recipes, nil
}

// GetRecipeBySlug retrieves a single recipe with its associations.
func (s *RecipeService) GetRecipeBySlug(ctx context.Context, slug string) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.preloaded(s.db.WithContext(ctx)).First(&recipe, "slug = ?", slug).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe validates the payload, uploads the image if present, and
// persists the recipe with its ingredients, steps and tag associations as
// one transaction. A slug collision surfaces as ErrDuplicateSlug.
func (s *RecipeService) CreateRecipe(ctx context.Context, input *RecipeInput) (*models.Recipe, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	imageURL, err := s.uploadImage(ctx, input.Image)
	if err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		Name:             input.Name,
		Slug:             Slugify(input.Name),
		ShortDescription: input.ShortDescription,
		Description:      input.Description,
		CookingTime:      input.CookingTime,
		Difficulty:       input.Difficulty,
		ServingSize:      input.ServingSize,
		ImageURL:         imageURL,
		Ingredients:      buildIngredients(input.Ingredients),
		Steps:            buildSteps(input.Steps),
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := findOrCreateTags(tx, input.Tags)
		if err != nil {
			return err
		}
		recipe.Tags = tags
		return tx.Create(&recipe).Error
	})
	if err != nil {
		// The upload already happened; don't leave the object orphaned.
		s.removeImageBestEffort(ctx, imageURL)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	s.invalidateListCache(ctx)
	return s.GetRecipeBySlug(ctx, recipe.Slug)
}

// UpdateRecipe replaces the recipe addressed by slug: scalar fields are
// overwritten, ingredients and steps are deleted and recreated, and the tag
// set is detached and rebuilt. The slug is re-derived from the new name, so
// a rename can collide with an existing recipe.
func (s *RecipeService) UpdateRecipe(ctx context.Context, slug string, input *RecipeInput) (*models.Recipe, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	var existing models.Recipe
	if err := s.db.WithContext(ctx).First(&existing, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	// Resolve the image before touching the database. staleURL is cleaned
	// up only after the transaction commits.
	imageURL := existing.ImageURL
	var staleURL *string
	switch {
	case input.RemoveImage:
		staleURL = existing.ImageURL
		imageURL = nil
	case input.Image != nil:
		uploaded, err := s.uploadImage(ctx, input.Image)
		if err != nil {
			return nil, err
		}
		staleURL = existing.ImageURL
		imageURL = uploaded
	}

	newSlug := Slugify(input.Name)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"name":              input.Name,
			"slug":              newSlug,
			"short_description": input.ShortDescription,
			"description":       input.Description,
			"cooking_time":      input.CookingTime,
			"difficulty":        input.Difficulty,
			"serving_size":      input.ServingSize,
			"image_url":         imageURL,
		}
		if err := tx.Model(&existing).Updates(updates).Error; err != nil {
			return err
		}

		// Replace the owned collections wholesale.
		if err := tx.Where("recipe_id = ?", existing.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", existing.ID).Delete(&models.Step{}).Error; err != nil {
			return err
		}
		ingredients := buildIngredients(input.Ingredients)
		for i := range ingredients {
			ingredients[i].RecipeID = existing.ID
		}
		if err := tx.Create(&ingredients).Error; err != nil {
			return err
		}
		steps := buildSteps(input.Steps)
		for i := range steps {
			steps[i].RecipeID = existing.ID
		}
		if err := tx.Create(&steps).Error; err != nil {
			return err
		}

		tags, err := findOrCreateTags(tx, input.Tags)
		if err != nil {
			return err
		}
		return tx.Model(&existing).Association("Tags").Replace(tags)
	})
	if err != nil {
		if input.Image != nil {
			s.removeImageBestEffort(ctx, imageURL)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateSlug
		}
		return nil, err
	}

	s.removeImageBestEffort(ctx, staleURL)
	s.invalidateListCache(ctx)
	return s.GetRecipeBySlug(ctx, newSlug)
}

// DeleteRecipe removes the recipe, its ingredients and steps, and detaches
// (but does not delete) its tags. The stored image is removed best-effort.
func (s *RecipeService) DeleteRecipe(ctx context.Context, slug string) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Step{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	s.removeImageBestEffort(ctx, recipe.ImageURL)
	s.invalidateListCache(ctx)
	return nil
}

func (s *RecipeService) preloaded(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Steps", func(db *gorm.DB) *gorm.DB {
			return db.Order("step_order ASC")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("name ASC")
		})
}

func (s *RecipeService) uploadImage(ctx context.Context, img *ImageUpload) (*string, error) {
	if img == nil {
		return nil, nil
	}
	if s.storage == nil {
		return nil, errors.New("image storage is not configured")
	}
	url, err := s.storage.Upload(ctx, img.Data, img.ContentType)
	if err != nil {
		return nil, err
	}
	return &url, nil
}

// removeImageBestEffort deletes an object from storage, logging failures
// instead of failing the user-facing operation.
func (s *RecipeService) removeImageBestEffort(ctx context.Context, url *string) {
	if url == nil || *url == "" || s.storage == nil {
		return
	}
	if err := s.storage.Remove(ctx, *url); err != nil {
		log.Printf("Failed to remove image %s: %v", *url, err)
	}
}

func (s *RecipeService) invalidateListCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, listCacheKey).Err(); err != nil {
		log.Printf("Failed to invalidate recipe list cache: %v", err)
	}
}

func buildIngredients(inputs []IngredientInput) []models.Ingredient {
	ingredients := make([]models.Ingredient, len(inputs))
	for i, in := range inputs {
		ingredients[i] = models.Ingredient{Amount: in.Amount, Name: in.Name}
	}
	return ingredients
}

func buildSteps(contents []string) []models.Step {
	steps := make([]models.Step, len(contents))
	for i, content := range contents {
		steps[i] = models.Step{Order: i + 1, Content: content}
	}
	return steps
}

// findOrCreateTags resolves display names against existing tags by
// case-insensitive match, creating any that are missing.
func findOrCreateTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		var tag models.Tag
		err := tx.Where("LOWER(name) = ?", strings.ToLower(name)).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func validateInput(input *RecipeInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return &ValidationError{Field: "name", Message: "name is required"}
	}
	if strings.TrimSpace(input.ShortDescription) == "" {
		return &ValidationError{Field: "shortDescription", Message: "short description is required"}
	}
	if len(input.ShortDescription) > 100 {
		return &ValidationError{Field: "shortDescription", Message: "short description must be at most 100 characters"}
	}
	if strings.TrimSpace(input.Description) == "" {
		return &ValidationError{Field: "description", Message: "description is required"}
	}
	if !models.ValidDifficulty(input.Difficulty) {
		return &ValidationError{Field: "difficulty", Message: "difficulty must be Easy, Medium or Hard"}
	}
	if n, err := strconv.Atoi(input.ServingSize); err != nil || n <= 0 {
		return &ValidationError{Field: "servingSize", Message: "serving size must be a positive integer"}
	}
	if len(input.Ingredients) == 0 {
		return &ValidationError{Field: "ingredients", Message: "at least one ingredient is required"}
	}
	for _, ing := range input.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			return &ValidationError{Field: "ingredients", Message: "ingredient name is required"}
		}
	}
	if len(input.Steps) == 0 {
		return &ValidationError{Field: "steps", Message: "at least one step is required"}
	}
	for _, step := range input.Steps {
		if strings.TrimSpace(step) == "" {
			return &ValidationError{Field: "steps", Message: "step content is required"}
		}
	}
	return nil
}

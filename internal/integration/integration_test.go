package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/recipebook/internal/models"
	"github.com/hearthside/recipebook/internal/service"
	"github.com/hearthside/recipebook/internal/testhelpers"
)

// These tests exercise the service against a real Postgres instance, the
// dialect production runs on, covering behaviour the in-memory SQLite tests
// approximate: unique-violation translation, uuid keys and cascade cleanup.

func carbonaraInput() *service.RecipeInput {
	return &service.RecipeInput{
		Name:             "Spaghetti Carbonara",
		ShortDescription: "Classic Roman pasta",
		Description:      "Cook the pasta, render the guanciale, toss with eggs and cheese.",
		CookingTime:      "25 minutes",
		Difficulty:       models.DifficultyMedium,
		ServingSize:      "4",
		Ingredients: []service.IngredientInput{
			{Amount: "400g", Name: "spaghetti"},
			{Amount: "150g", Name: "guanciale"},
		},
		Steps: []string{"Cook the pasta.", "Render the guanciale.", "Toss and serve."},
		Tags:  []string{"Italian", "Pasta"},
	}
}

func TestRecipeLifecycleOnPostgres(t *testing.T) {
	pg := testhelpers.SetupPostgres(t)
	svc := service.NewRecipeService(pg.DB, nil, nil)
	ctx := context.Background()

	created, err := svc.CreateRecipe(ctx, carbonaraInput())
	require.NoError(t, err)
	assert.Equal(t, "spaghetti-carbonara", created.Slug)
	require.Len(t, created.Steps, 3)
	assert.Equal(t, 1, created.Steps[0].Order)

	// Postgres reports the duplicate through its own error codes; the
	// service must still surface the sentinel.
	_, err = svc.CreateRecipe(ctx, carbonaraInput())
	assert.ErrorIs(t, err, service.ErrDuplicateSlug)

	fetched, err := svc.GetRecipeBySlug(ctx, "spaghetti-carbonara")
	require.NoError(t, err)
	assert.Equal(t, created.ID, fetched.ID)

	input := carbonaraInput()
	input.Ingredients = input.Ingredients[:1]
	input.Steps = []string{"Do it all in one pan."}
	updated, err := svc.UpdateRecipe(ctx, "spaghetti-carbonara", input)
	require.NoError(t, err)
	require.Len(t, updated.Ingredients, 1)
	require.Len(t, updated.Steps, 1)

	require.NoError(t, svc.DeleteRecipe(ctx, "spaghetti-carbonara"))

	var ingredients, steps int64
	require.NoError(t, pg.DB.Model(&models.Ingredient{}).Count(&ingredients).Error)
	require.NoError(t, pg.DB.Model(&models.Step{}).Count(&steps).Error)
	assert.Zero(t, ingredients)
	assert.Zero(t, steps)

	// Tags outlive the recipes that referenced them.
	var tags int64
	require.NoError(t, pg.DB.Model(&models.Tag{}).Count(&tags).Error)
	assert.Equal(t, int64(2), tags)
}

package client

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/recipebook/internal/models"
)

func filledForm() *Form {
	f := NewForm()
	f.Name = "Beef Tacos"
	f.ShortDescription = "Weeknight favourite"
	f.Description = "Brown the beef, warm the shells, assemble."
	f.CookingTime = "30 minutes"
	f.Difficulty = models.DifficultyEasy
	f.ServingSize = "4"
	f.UpdateIngredient(0, "500g", "ground beef")
	f.UpdateStep(0, "Brown the beef.")
	return f
}

func TestNewFormStartsWithOneRowEach(t *testing.T) {
	f := NewForm()
	assert.Len(t, f.Ingredients, 1)
	assert.Len(t, f.Steps, 1)
	assert.False(t, f.Editing())
}

func TestFormRowEditing(t *testing.T) {
	f := NewForm()

	f.AddIngredient()
	f.UpdateIngredient(1, "2", "eggs")
	require.Len(t, f.Ingredients, 2)
	assert.Equal(t, "eggs", f.Ingredients[1].Name)

	f.RemoveIngredient(0)
	require.Len(t, f.Ingredients, 1)
	assert.Equal(t, "eggs", f.Ingredients[0].Name)

	// The last row stays put.
	f.RemoveIngredient(0)
	assert.Len(t, f.Ingredients, 1)

	f.AddStep()
	f.UpdateStep(1, "Serve.")
	f.RemoveStep(0)
	require.Len(t, f.Steps, 1)
	assert.Equal(t, "Serve.", f.Steps[0])
	f.RemoveStep(0)
	assert.Len(t, f.Steps, 1)
}

func TestFormTagToggleLimit(t *testing.T) {
	f := NewForm()
	for _, tag := range []string{"A", "B", "C", "D", "E", "F"} {
		require.NoError(t, f.ToggleTag(tag))
	}
	assert.ErrorIs(t, f.ToggleTag("G"), ErrTagLimit)

	// Deselecting works past the limit and frees a slot.
	require.NoError(t, f.ToggleTag("A"))
	require.NoError(t, f.ToggleTag("G"))
	assert.Equal(t, "B, C, D, E, F, G", f.TagText)
}

func TestFormTagTextSync(t *testing.T) {
	f := NewForm()
	f.SetTagText("Italian, pasta ,Quick, quick")
	assert.Equal(t, []string{"Italian", "pasta", "Quick"}, f.Tags)

	require.NoError(t, f.ToggleTag("pasta"))
	assert.Equal(t, []string{"Italian", "Quick"}, f.Tags)
	assert.Equal(t, "Italian, Quick", f.TagText)
}

func TestFormValidateExpandsInvalidSections(t *testing.T) {
	f := NewForm()
	f.Expanded = map[Section]bool{}

	errs := f.Validate()
	require.NotEmpty(t, errs)
	assert.True(t, f.Expanded[SectionBasics])
	assert.True(t, f.Expanded[SectionIngredients])
	assert.True(t, f.Expanded[SectionSteps])
	assert.True(t, f.Expanded[SectionDetails])

	fields := make(map[string]bool)
	for _, e := range errs {
		fields[e.Field] = true
	}
	assert.True(t, fields["name"])
	assert.True(t, fields["ingredients"])
	assert.True(t, fields["steps"])
	assert.True(t, fields["servingSize"])
}

func TestFormValidatePasses(t *testing.T) {
	assert.Empty(t, filledForm().Validate())
}

func TestFormValidateShortDescriptionLength(t *testing.T) {
	f := filledForm()
	for len(f.ShortDescription) <= 100 {
		f.ShortDescription += " and more"
	}
	errs := f.Validate()
	require.Len(t, errs, 1)
	assert.Equal(t, "shortDescription", errs[0].Field)
}

func TestFormSubmissionFields(t *testing.T) {
	f := filledForm()
	f.AddIngredient() // left blank, must be dropped
	f.AddStep()
	f.SetTagText("Mexican, Quick")

	sub, err := f.Submission()
	require.NoError(t, err)

	assert.Equal(t, "Beef Tacos", sub.Fields["name"])
	assert.Equal(t, `[{"amount":"500g","name":"ground beef"}]`, sub.Fields["ingredients"])
	assert.Equal(t, `["Brown the beef."]`, sub.Fields["steps"])
	assert.Equal(t, "Mexican,Quick", sub.Fields["tags"])
	_, ok := sub.Fields["removeImage"]
	assert.False(t, ok)
	assert.Nil(t, sub.ImageData)
}

func TestFormEditPrefills(t *testing.T) {
	url := "https://bucket.s3.amazonaws.com/recipe-images/x.png"
	recipe := models.Recipe{
		Name:             "Beef Tacos",
		Slug:             "beef-tacos",
		ShortDescription: "Weeknight favourite",
		Description:      "Assemble.",
		Difficulty:       models.DifficultyEasy,
		ServingSize:      "4",
		ImageURL:         &url,
		Ingredients:      []models.Ingredient{{Amount: "500g", Name: "ground beef"}},
		Steps:            []models.Step{{Order: 1, Content: "Brown the beef."}},
		Tags:             []models.Tag{{Name: "Mexican"}},
	}

	f := EditForm(recipe)
	assert.True(t, f.Editing())
	assert.Equal(t, "Beef Tacos", f.Name)
	assert.Equal(t, []string{"Brown the beef."}, f.Steps)
	assert.Equal(t, []string{"Mexican"}, f.Tags)
	assert.Equal(t, "Mexican", f.TagText)
	assert.True(t, f.HasImage())
}

func TestFormClearImageMarksRemoval(t *testing.T) {
	url := "https://bucket.s3.amazonaws.com/recipe-images/x.png"
	f := EditForm(models.Recipe{Slug: "pizza", ImageURL: &url})
	require.True(t, f.HasImage())

	f.ClearImage()
	assert.False(t, f.HasImage())

	sub, err := f.Submission()
	require.NoError(t, err)
	assert.Equal(t, "true", sub.Fields["removeImage"])
}

func TestFormAttachImage(t *testing.T) {
	f := NewForm()

	require.Error(t, f.AttachImage([]byte("not an image"), "x.txt"))
	assert.False(t, f.HasImage())

	require.NoError(t, f.AttachImage(encodePNG(t, 10, 10), "photo.png"))
	assert.True(t, f.HasImage())

	sub, err := f.Submission()
	require.NoError(t, err)
	assert.Equal(t, "photo.png", sub.ImageName)
	assert.NotEmpty(t, sub.ImageData)
}

func TestFormAttachImageClearsPendingRemoval(t *testing.T) {
	url := "https://bucket.s3.amazonaws.com/recipe-images/x.png"
	f := EditForm(models.Recipe{Slug: "pizza", ImageURL: &url})
	f.ClearImage()

	require.NoError(t, f.AttachImage(encodePNG(t, 10, 10), "new.png"))
	sub, err := f.Submission()
	require.NoError(t, err)
	_, ok := sub.Fields["removeImage"]
	assert.False(t, ok)
}

func TestFormDeleteRequiresEditMode(t *testing.T) {
	f := NewForm()
	err := f.Delete(nil, nil)
	assert.ErrorIs(t, err, ErrNotEditing)
}

func TestNotifyError(t *testing.T) {
	now := time.Now()

	n := NotifyError(&APIError{
		Status:      409,
		Err:         "a recipe with this name already exists",
		Title:       "Duplicate Recipe Name",
		Description: "Please choose a different name for your recipe.",
	}, now)
	assert.Equal(t, "Duplicate Recipe Name", n.Title)
	assert.Equal(t, "Please choose a different name for your recipe.", n.Description)
	assert.Equal(t, now.Add(5*time.Second), n.ExpiresAt)

	n = NotifyError(errors.New("connection refused"), now)
	assert.Equal(t, "Something went wrong", n.Title)
	assert.Equal(t, "connection refused", n.Description)
}

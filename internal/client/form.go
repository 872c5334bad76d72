package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/hearthside/recipebook/internal/models"
)

// Section identifies one collapsible block of the recipe form.
type Section int

const (
	SectionBasics Section = iota
	SectionIngredients
	SectionSteps
	SectionDetails
	SectionTags
	SectionImage
)

// MaxTags caps how many tags a recipe may carry.
const MaxTags = 6

var (
	ErrTagLimit       = errors.New("a recipe can have at most 6 tags")
	ErrSubmitInFlight = errors.New("a submission is already in progress")
	ErrNotEditing     = errors.New("only an existing recipe can be deleted")
)

// IngredientDraft is one editable ingredient row.
type IngredientDraft struct {
	Amount string
	Name   string
}

// FormError points at the field that failed validation and the section
// holding it.
type FormError struct {
	Section Section
	Field   string
	Message string
}

func (e FormError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Notification is a transient message shown after a failed submission.
type Notification struct {
	Title       string
	Description string
	ExpiresAt   time.Time
}

// notificationTTL is how long an error notification stays visible.
const notificationTTL = 5 * time.Second

// Form drives the create/edit recipe screen: field edits, dynamic
// ingredient and step rows, tag selection, image attachment, section-scoped
// validation and submission. In edit mode it remembers the slug it loaded
// from and submits updates against it.
type Form struct {
	mu       sync.Mutex
	inFlight bool

	editSlug string

	Name             string
	ShortDescription string
	Description      string
	CookingTime      string
	Difficulty       string
	ServingSize      string
	Ingredients      []IngredientDraft
	Steps            []string
	Tags             []string
	TagText          string

	imageData   []byte
	imageName   string
	removeImage bool
	existingURL string

	Expanded map[Section]bool
}

// NewForm creates a blank form with one empty ingredient and step row, the
// way the create screen opens.
func NewForm() *Form {
	return &Form{
		Ingredients: []IngredientDraft{{}},
		Steps:       []string{""},
		Expanded: map[Section]bool{
			SectionBasics: true,
		},
	}
}

// EditForm creates a form pre-filled from an existing recipe.
func EditForm(recipe models.Recipe) *Form {
	f := NewForm()
	f.editSlug = recipe.Slug
	f.Name = recipe.Name
	f.ShortDescription = recipe.ShortDescription
	f.Description = recipe.Description
	f.CookingTime = recipe.CookingTime
	f.Difficulty = recipe.Difficulty
	f.ServingSize = recipe.ServingSize

	if len(recipe.Ingredients) > 0 {
		f.Ingredients = make([]IngredientDraft, len(recipe.Ingredients))
		for i, ing := range recipe.Ingredients {
			f.Ingredients[i] = IngredientDraft{Amount: ing.Amount, Name: ing.Name}
		}
	}
	if len(recipe.Steps) > 0 {
		f.Steps = make([]string, len(recipe.Steps))
		for i, s := range recipe.Steps {
			f.Steps[i] = s.Content
		}
	}
	for _, t := range recipe.Tags {
		f.Tags = append(f.Tags, t.Name)
	}
	f.TagText = strings.Join(f.Tags, ", ")
	if recipe.ImageURL != nil {
		f.existingURL = *recipe.ImageURL
	}
	return f
}

// Editing reports whether the form edits an existing recipe.
func (f *Form) Editing() bool {
	return f.editSlug != ""
}

// AddIngredient appends an empty ingredient row.
func (f *Form) AddIngredient() {
	f.Ingredients = append(f.Ingredients, IngredientDraft{})
}

// RemoveIngredient drops the row at i; the last remaining row cannot be
// removed.
func (f *Form) RemoveIngredient(i int) {
	if len(f.Ingredients) <= 1 || i < 0 || i >= len(f.Ingredients) {
		return
	}
	f.Ingredients = append(f.Ingredients[:i], f.Ingredients[i+1:]...)
}

// UpdateIngredient replaces the row at i.
func (f *Form) UpdateIngredient(i int, amount, name string) {
	if i < 0 || i >= len(f.Ingredients) {
		return
	}
	f.Ingredients[i] = IngredientDraft{Amount: amount, Name: name}
}

// AddStep appends an empty step row.
func (f *Form) AddStep() {
	f.Steps = append(f.Steps, "")
}

// RemoveStep drops the step at i; the last remaining step cannot be removed.
func (f *Form) RemoveStep(i int) {
	if len(f.Steps) <= 1 || i < 0 || i >= len(f.Steps) {
		return
	}
	f.Steps = append(f.Steps[:i], f.Steps[i+1:]...)
}

// UpdateStep replaces the step content at i.
func (f *Form) UpdateStep(i int, content string) {
	if i < 0 || i >= len(f.Steps) {
		return
	}
	f.Steps[i] = content
}

// ToggleTag selects or deselects a suggested tag, keeping the free-text
// field in sync. Selecting past the tag limit fails.
func (f *Form) ToggleTag(name string) error {
	for i, t := range f.Tags {
		if strings.EqualFold(t, name) {
			f.Tags = append(f.Tags[:i], f.Tags[i+1:]...)
			f.TagText = strings.Join(f.Tags, ", ")
			return nil
		}
	}
	if len(f.Tags) >= MaxTags {
		return ErrTagLimit
	}
	f.Tags = append(f.Tags, name)
	f.TagText = strings.Join(f.Tags, ", ")
	return nil
}

// SetTagText replaces the free-text tag field and re-derives the selection
// from it. Entries past the tag limit are kept in the text but dropped from
// the selection.
func (f *Form) SetTagText(text string) {
	f.TagText = text
	f.Tags = nil
	seen := make(map[string]struct{})
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key := strings.ToLower(part)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		if len(f.Tags) < MaxTags {
			f.Tags = append(f.Tags, part)
		}
	}
}

// AttachImage validates and stages an image for upload, replacing any
// pending removal.
func (f *Form) AttachImage(data []byte, name string) error {
	if _, err := ValidateImage(data); err != nil {
		return err
	}
	f.imageData = append([]byte(nil), data...)
	f.imageName = name
	f.removeImage = false
	return nil
}

// ClearImage discards a staged image and, in edit mode, marks the stored
// image for removal. Distinct from leaving the image untouched.
func (f *Form) ClearImage() {
	f.imageData = nil
	f.imageName = ""
	f.removeImage = true
}

// HasImage reports whether the form will show an image: either staged or
// already stored and not marked for removal.
func (f *Form) HasImage() bool {
	if f.imageData != nil {
		return true
	}
	return f.existingURL != "" && !f.removeImage
}

// Validate checks every section and force-expands each one holding an
// error, so nothing invalid stays hidden behind a collapsed header.
func (f *Form) Validate() []FormError {
	var errs []FormError
	add := func(section Section, field, message string) {
		errs = append(errs, FormError{Section: section, Field: field, Message: message})
		f.Expanded[section] = true
	}

	if strings.TrimSpace(f.Name) == "" {
		add(SectionBasics, "name", "name is required")
	}
	if strings.TrimSpace(f.ShortDescription) == "" {
		add(SectionBasics, "shortDescription", "short description is required")
	} else if len(f.ShortDescription) > 100 {
		add(SectionBasics, "shortDescription", "short description must be at most 100 characters")
	}
	if strings.TrimSpace(f.Description) == "" {
		add(SectionBasics, "description", "description is required")
	}

	if !f.hasIngredient() {
		add(SectionIngredients, "ingredients", "at least one ingredient is required")
	}
	if !f.hasStep() {
		add(SectionSteps, "steps", "at least one step is required")
	}

	if !models.ValidDifficulty(f.Difficulty) {
		add(SectionDetails, "difficulty", "difficulty must be Easy, Medium or Hard")
	}
	if n, err := strconv.Atoi(strings.TrimSpace(f.ServingSize)); err != nil || n < 1 {
		add(SectionDetails, "servingSize", "serving size must be a positive number")
	}

	return errs
}

func (f *Form) hasIngredient() bool {
	for _, ing := range f.Ingredients {
		if strings.TrimSpace(ing.Name) != "" {
			return true
		}
	}
	return false
}

func (f *Form) hasStep() bool {
	for _, s := range f.Steps {
		if strings.TrimSpace(s) != "" {
			return true
		}
	}
	return false
}

// Submission is the wire payload for a create or update: multipart fields
// plus an optional staged image.
type Submission struct {
	Fields    map[string]string
	ImageData []byte
	ImageName string
}

// Submission builds the multipart payload from the current draft. Blank
// ingredient and step rows are dropped.
func (f *Form) Submission() (*Submission, error) {
	var ingredients []models.Ingredient
	for _, ing := range f.Ingredients {
		if strings.TrimSpace(ing.Name) == "" {
			continue
		}
		ingredients = append(ingredients, models.Ingredient{Amount: ing.Amount, Name: ing.Name})
	}
	ingredientsJSON, err := json.Marshal(ingredients)
	if err != nil {
		return nil, err
	}

	var steps []string
	for _, s := range f.Steps {
		if strings.TrimSpace(s) == "" {
			continue
		}
		steps = append(steps, s)
	}
	stepsJSON, err := json.Marshal(steps)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"name":             f.Name,
		"shortDescription": f.ShortDescription,
		"description":      f.Description,
		"cookingTime":      f.CookingTime,
		"difficulty":       f.Difficulty,
		"servingSize":      strings.TrimSpace(f.ServingSize),
		"ingredients":      string(ingredientsJSON),
		"steps":            string(stepsJSON),
		"tags":             strings.Join(f.Tags, ","),
	}
	if f.removeImage {
		fields["removeImage"] = "true"
	}

	return &Submission{
		Fields:    fields,
		ImageData: f.imageData,
		ImageName: f.imageName,
	}, nil
}

// Submit validates and sends the draft. At most one submission runs at a
// time; a second call while one is in flight fails immediately.
func (f *Form) Submit(ctx context.Context, c *Client) (*models.Recipe, error) {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.inFlight = true
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight = false
		f.mu.Unlock()
	}()

	if errs := f.Validate(); len(errs) > 0 {
		return nil, errs[0]
	}

	sub, err := f.Submission()
	if err != nil {
		return nil, err
	}

	if f.Editing() {
		return c.UpdateRecipe(ctx, f.editSlug, sub)
	}
	return c.CreateRecipe(ctx, sub)
}

// Delete removes the recipe being edited. Create-mode forms have nothing to
// delete.
func (f *Form) Delete(ctx context.Context, c *Client) error {
	if !f.Editing() {
		return ErrNotEditing
	}
	return c.DeleteRecipe(ctx, f.editSlug)
}

// NotifyError shapes a failed submission into a transient notification,
// preferring the server's structured title and description.
func NotifyError(err error, now time.Time) Notification {
	n := Notification{
		Title:       "Something went wrong",
		Description: err.Error(),
		ExpiresAt:   now.Add(notificationTTL),
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if apiErr.Title != "" {
			n.Title = apiErr.Title
		}
		if apiErr.Description != "" {
			n.Description = apiErr.Description
		}
	}
	return n
}

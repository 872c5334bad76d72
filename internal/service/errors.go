package service

import (
	"errors"
	"fmt"
)

var (
	// ErrRecipeNotFound is returned when a slug matches no recipe.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrDuplicateSlug is returned when a recipe name derives a slug that
	// already exists in the catalog.
	ErrDuplicateSlug = errors.New("a recipe with this name already exists")
)

// ValidationError reports a rejected field in a create or update payload.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

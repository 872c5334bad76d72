package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hearthside/recipebook/internal/middleware"
	"github.com/hearthside/recipebook/internal/service"
)

// respondError converts a service failure into the structured error body.
// title and description describe the failed operation and are used for the
// unexpected-error case; known error kinds carry their own wording.
func respondError(c *gin.Context, err error, title, description string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.JSON(http.StatusBadRequest, middleware.ErrorBody{
			Error:       vErr.Message,
			Title:       "Invalid Recipe",
			Description: "Please correct the highlighted field and try again.",
			Details:     vErr.Field,
		})
	case errors.Is(err, service.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, middleware.ErrorBody{
			Error:       "A recipe with this name already exists",
			Title:       "Duplicate Recipe Name",
			Description: "Please choose a different name for your recipe.",
		})
	case errors.Is(err, service.ErrRecipeNotFound):
		c.JSON(http.StatusNotFound, middleware.ErrorBody{
			Error:       "Recipe not found",
			Title:       "Not Found",
			Description: "No recipe exists at this address.",
		})
	default:
		c.JSON(http.StatusInternalServerError, middleware.ErrorBody{
			Error:       title,
			Title:       title,
			Description: description,
			Details:     err.Error(),
		})
	}
}

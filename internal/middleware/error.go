package middleware

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the structured error response every failing request gets.
// No handler lets a raw failure escape in any other shape.
type ErrorBody struct {
	Error       string `json:"error"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Details     string `json:"details,omitempty"`
}

// ErrorHandler recovers panics and converts them into the structured error
// body instead of an unstructured 500.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic recovered: %v", r)
				c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorBody{
					Error:       "Internal server error",
					Title:       "Something Went Wrong",
					Description: "An unexpected error occurred. Please try again.",
					Details:     fmt.Sprintf("%v", r),
				})
			}
		}()
		c.Next()
	}
}

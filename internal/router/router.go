package router

import (
	"github.com/gin-gonic/gin"

	"github.com/hearthside/recipebook/internal/api"
	"github.com/hearthside/recipebook/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(recipeHandler *api.RecipeHandler, healthHandler *api.HealthHandler) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	recipeHandler.RegisterRoutes(v1)
	healthHandler.RegisterRoutes(v1)

	return router
}

package api

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/hearthside/recipebook/internal/middleware"
	"github.com/hearthside/recipebook/internal/models"
	"github.com/hearthside/recipebook/internal/service"
	"github.com/hearthside/recipebook/internal/types"
)

// SetupTestDB creates an in-memory database with the full schema.
func SetupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:api-%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Recipe{},
		&models.Ingredient{},
		&models.Step{},
		&models.Tag{},
	))
	return db
}

// SetupTestRouter creates a router backed by an in-memory database and
// returns it together with a valid bearer token.
func SetupTestRouter(t *testing.T) (*gin.Engine, string) {
	gin.SetMode(gin.TestMode)

	db := SetupTestDB(t)
	authService := service.NewAuthService("test-secret")
	recipeService := service.NewRecipeService(db, nil, nil)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")
	NewRecipeHandler(recipeService, authService).RegisterRoutes(v1)

	token, err := authService.GenerateToken(&types.TokenClaims{
		UserID:   uuid.New(),
		Username: "testuser",
	})
	require.NoError(t, err)

	return router, token
}

// RecipeForm is a multipart recipe submission under construction.
type RecipeForm struct {
	Fields map[string]string
	Image  []byte
}

// TacosForm returns a valid create payload.
func TacosForm() *RecipeForm {
	return &RecipeForm{Fields: map[string]string{
		"name":             "Beef Tacos",
		"shortDescription": "Flavorful beef tacos",
		"description":      "Ground beef tacos with a blend of spices served in soft tortillas.",
		"cookingTime":      "25 minutes",
		"difficulty":       "Easy",
		"servingSize":      "4",
		"ingredients":      `[{"amount":"500g","name":"ground beef"},{"amount":"8","name":"small tortillas"}]`,
		"steps":            `["Brown the beef.","Season the beef.","Fill the tortillas."]`,
		"tags":             "mexican, quick",
	}}
}

// PerformForm sends a multipart request with the optional bearer token.
func PerformForm(t *testing.T, router *gin.Engine, method, path, token string, form *RecipeForm) *httptest.ResponseRecorder {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range form.Fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	if form.Image != nil {
		part, err := writer.CreateFormFile("image", "photo.jpg")
		require.NoError(t, err)
		_, err = part.Write(form.Image)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// PerformRequest sends a bodyless request.
func PerformRequest(router *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

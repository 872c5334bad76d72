package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/hearthside/recipebook/config"
	"github.com/hearthside/recipebook/internal/api"
	"github.com/hearthside/recipebook/internal/database"
	"github.com/hearthside/recipebook/internal/router"
	"github.com/hearthside/recipebook/internal/service"
)

// Server wires the data store, storage adapter and HTTP surface together.
type Server struct {
	http *http.Server
}

// New builds a server from configuration. Redis and S3 are optional: the
// API degrades to uncached lists and image-less recipes when they are
// unavailable.
func New(cfg *config.Config) (*Server, error) {
	db, err := database.New(cfg)
	if err != nil {
		return nil, err
	}

	var cache *redis.Client
	if cache, err = database.NewRedisClient(cfg); err != nil {
		log.Printf("Redis unavailable, recipe list cache disabled: %v", err)
		cache = nil
	}

	var storage service.ImageStore
	if cfg.AWSRegion != "" {
		s3Cfg, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to configure S3: %w", err)
		}
		storage = service.NewImageService(s3Cfg)
	} else {
		log.Printf("AWS_REGION not set, image uploads disabled")
	}

	authService := service.NewAuthService(cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, storage, cache)

	engine := router.SetupRouter(
		api.NewRecipeHandler(recipeService, authService),
		api.NewHealthHandler(db),
	)

	return &Server{
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}, nil
}

// Start starts the server and blocks until it stops.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

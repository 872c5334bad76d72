package client

import (
	"context"
	"sync"

	"github.com/hearthside/recipebook/internal/models"
)

// Store is the shared in-memory recipe collection behind every view. It is
// populated on initial load and kept current by applying the result of each
// successful mutation; subscribers are notified on every change.
type Store struct {
	mu      sync.RWMutex
	recipes []models.Recipe
	loaded  bool
	subs    []chan struct{}
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load fetches the catalog through the client and replaces the collection.
func (s *Store) Load(ctx context.Context, c *Client) error {
	recipes, err := c.ListRecipes(ctx)
	if err != nil {
		return err
	}
	s.SetAll(recipes)
	return nil
}

// SetAll replaces the whole collection.
func (s *Store) SetAll(recipes []models.Recipe) {
	s.mu.Lock()
	s.recipes = append([]models.Recipe(nil), recipes...)
	s.loaded = true
	s.mu.Unlock()
	s.notify()
}

// All returns a copy of the collection.
func (s *Store) All() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Recipe(nil), s.recipes...)
}

// Loaded reports whether the initial load has completed.
func (s *Store) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

// Get returns the recipe with the given slug.
func (s *Store) Get(slug string) (models.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.recipes {
		if r.Slug == slug {
			return r, true
		}
	}
	return models.Recipe{}, false
}

// Upsert applies a created or updated recipe to the collection, matching by
// ID so a rename (slug change) replaces the old entry.
func (s *Store) Upsert(recipe models.Recipe) {
	s.mu.Lock()
	replaced := false
	for i, r := range s.recipes {
		if r.ID == recipe.ID {
			s.recipes[i] = recipe
			replaced = true
			break
		}
	}
	if !replaced {
		s.recipes = append(s.recipes, recipe)
	}
	s.mu.Unlock()
	s.notify()
}

// Remove drops the recipe with the given slug.
func (s *Store) Remove(slug string) {
	s.mu.Lock()
	for i, r := range s.recipes {
		if r.Slug == slug {
			s.recipes = append(s.recipes[:i], s.recipes[i+1:]...)
			break
		}
	}
	s.mu.Unlock()
	s.notify()
}

// Subscribe returns a channel that receives a signal after every change.
// Slow subscribers miss intermediate signals rather than block mutations.
func (s *Store) Subscribe() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	ch := make(chan struct{}, 1)
	s.subs = append(s.subs, ch)
	return ch
}

func (s *Store) notify() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, ch := range s.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

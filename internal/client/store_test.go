package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hearthside/recipebook/internal/models"
)

func TestStoreSetAllAndGet(t *testing.T) {
	s := NewStore()
	assert.False(t, s.Loaded())

	s.SetAll([]models.Recipe{makeRecipe("beef-tacos", ""), makeRecipe("pizza", "")})
	assert.True(t, s.Loaded())
	assert.Len(t, s.All(), 2)

	r, ok := s.Get("pizza")
	require.True(t, ok)
	assert.Equal(t, "pizza", r.Slug)

	_, ok = s.Get("no-such-recipe")
	assert.False(t, ok)
}

func TestStoreUpsertReplacesByID(t *testing.T) {
	s := NewStore()
	original := makeRecipe("beef-tacos", "")
	s.SetAll([]models.Recipe{original})

	renamed := original
	renamed.Name = "Pork Tacos"
	renamed.Slug = "pork-tacos"
	s.Upsert(renamed)

	require.Len(t, s.All(), 1)
	_, ok := s.Get("beef-tacos")
	assert.False(t, ok)
	r, ok := s.Get("pork-tacos")
	require.True(t, ok)
	assert.Equal(t, original.ID, r.ID)
}

func TestStoreUpsertAppendsNew(t *testing.T) {
	s := NewStore()
	s.SetAll(nil)

	s.Upsert(makeRecipe("pizza", ""))
	assert.Len(t, s.All(), 1)
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.SetAll([]models.Recipe{makeRecipe("pizza", ""), makeRecipe("stew", "")})

	s.Remove("pizza")
	assert.Len(t, s.All(), 1)

	s.Remove("no-such-recipe")
	assert.Len(t, s.All(), 1)
}

func TestStoreSubscribe(t *testing.T) {
	s := NewStore()
	ch := s.Subscribe()

	s.SetAll([]models.Recipe{makeRecipe("pizza", "")})
	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal")
	}

	// Two changes without a read coalesce into one pending signal.
	s.Upsert(makeRecipe("stew", ""))
	s.Remove("pizza")
	select {
	case <-ch:
	default:
		t.Fatal("expected a change signal")
	}
	select {
	case <-ch:
		t.Fatal("expected signals to coalesce")
	default:
	}
}

func TestStoreAllReturnsCopy(t *testing.T) {
	s := NewStore()
	s.SetAll([]models.Recipe{makeRecipe("pizza", "")})

	all := s.All()
	all[0].Slug = "mutated"

	r, ok := s.Get("pizza")
	require.True(t, ok)
	assert.Equal(t, "pizza", r.Slug)
}

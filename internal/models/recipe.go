package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe is the aggregate root of the catalog. Ingredients and steps are
// owned by the recipe and rewritten in full on every update; tags are a
// shared vocabulary attached through a join table.
type Recipe struct {
	ID               uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt        time.Time    `json:"-"`
	UpdatedAt        time.Time    `json:"-"`
	Name             string       `gorm:"size:255;not null" json:"name"`
	Slug             string       `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ShortDescription string       `gorm:"size:100;not null" json:"shortDescription"`
	Description      string       `gorm:"type:text;not null" json:"description"`
	CookingTime      string       `gorm:"size:100" json:"cookingTime"`
	Difficulty       string       `gorm:"size:20" json:"difficulty"`
	ServingSize      string       `gorm:"size:20" json:"servingSize"`
	ImageURL         *string      `gorm:"size:512" json:"imageUrl"`
	Ingredients      []Ingredient `gorm:"constraint:OnDelete:CASCADE" json:"ingredients"`
	Steps            []Step       `gorm:"constraint:OnDelete:CASCADE" json:"steps"`
	Tags             []Tag        `gorm:"many2many:recipe_tags;" json:"tags"`
}

// BeforeCreate assigns the primary key so the model works on both Postgres
// and the SQLite test databases (no server-side uuid default there).
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Ingredient belongs to exactly one recipe and has no identity of its own
// across edits: updates replace the whole collection.
type Ingredient struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Amount   string    `gorm:"size:100" json:"amount"`
	Name     string    `gorm:"size:255;not null" json:"name"`
}

// Step is a single ordered instruction. Order is 1-based and dense,
// assigned from array position at write time.
type Step struct {
	ID       uint      `gorm:"primaryKey" json:"-"`
	RecipeID uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	Order    int       `gorm:"column:step_order;not null" json:"order"`
	Content  string    `gorm:"type:text;not null" json:"content"`
}

// Tag is a shared label. Names are stored title-cased and deduplicated
// case-insensitively; tags outlive the recipes that reference them.
type Tag struct {
	ID   uint   `gorm:"primaryKey" json:"-"`
	Name string `gorm:"size:100;not null;uniqueIndex" json:"name"`
}

// Difficulty levels accepted by the API.
const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// ValidDifficulty reports whether d is one of the accepted levels.
func ValidDifficulty(d string) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

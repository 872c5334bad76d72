package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/hearthside/recipebook/internal/models"
)

// RunMigrations brings the schema up to date for every catalog model.
func RunMigrations(db *gorm.DB) error {
	log.Printf("Running schema migrations")
	return db.AutoMigrate(
		&models.Recipe{},
		&models.Ingredient{},
		&models.Step{},
		&models.Tag{},
	)
}

package database

import (
	"fmt"

	"github.com/jinzhu/gorm"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"larder/internal/config"
	"larder/internal/models"
)

// Open connects to the configured store and runs migrations.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Driver, err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the schema for every entity.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Item{},
		&models.ItemBatch{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.CookLog{},
		&models.Technique{},
		&models.RecipeTechnique{},
		&models.GroceryItem{},
		&models.MealPlan{},
	).Error
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

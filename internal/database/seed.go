package database

import (
	"fmt"
	"time"

	"github.com/jinzhu/gorm"

	"larder/internal/models"
	"larder/internal/suggest"
)

// Seed populates a starter household: common techniques, pantry staples and
// a few recipes to suggest against. Idempotent — existing rows by name or
// title are left alone.
func Seed(db *gorm.DB) error {
	techniques := []models.Technique{
		{Name: "sautéing", Description: "Cooking quickly in a small amount of fat over high heat", Difficulty: 1},
		{Name: "braising", Description: "Slow cooking in liquid for tender, flavorful results", Difficulty: 3},
		{Name: "roasting", Description: "Cooking with dry heat in an oven", Difficulty: 2},
		{Name: "emulsification", Description: "Combining fat and water-based ingredients into a stable mixture", Difficulty: 4},
		{Name: "deglazing", Description: "Adding liquid to a hot pan to dissolve flavorful browned bits", Difficulty: 2},
		{Name: "knife skills", Description: "Efficient, safe cutting techniques", Difficulty: 2},
		{Name: "reduction", Description: "Concentrating flavors by simmering to evaporate liquid", Difficulty: 2},
		{Name: "mise en place", Description: "Preparing and organizing all ingredients before cooking", Difficulty: 1},
	}
	for _, t := range techniques {
		t.Name = suggest.Normalize(t.Name)
		if err := db.Where(models.Technique{Name: t.Name}).FirstOrCreate(&t).Error; err != nil {
			return fmt.Errorf("seed technique %s: %w", t.Name, err)
		}
	}

	type seedItem struct {
		name     string
		category string
		location string
		staple   bool
		qty      string
		expires  *time.Time
	}
	soon := time.Now().Add(3 * 24 * time.Hour)
	items := []seedItem{
		{"garlic", "PRODUCE", "PANTRY", true, "2 heads", nil},
		{"onion", "PRODUCE", "PANTRY", true, "3", nil},
		{"canned chickpeas", "PANTRY", "PANTRY", true, "2 cans", nil},
		{"canned crushed tomatoes", "PANTRY", "PANTRY", true, "2 cans", nil},
		{"soy sauce", "CONDIMENT", "PANTRY", true, "1 bottle", nil},
		{"olive oil", "PANTRY", "PANTRY", true, "1 bottle", nil},
		{"chicken thighs", "MEAT", "FREEZER", false, "1 lb", &soon},
		{"butter", "DAIRY", "FRIDGE", true, "1 stick", nil},
		{"eggs", "DAIRY", "FRIDGE", true, "a dozen", nil},
		{"rice", "PANTRY", "PANTRY", true, "2 kg", nil},
		{"pasta", "PANTRY", "PANTRY", true, "500g", nil},
		{"chicken broth", "PANTRY", "PANTRY", true, "1 carton", nil},
		{"lemon", "PRODUCE", "FRIDGE", false, "2", &soon},
		{"cumin", "SPICE", "PANTRY", true, "1 jar", nil},
		{"paprika", "SPICE", "PANTRY", true, "1 jar", nil},
	}
	for _, it := range items {
		item := models.Item{
			Name:     suggest.Normalize(it.name),
			Category: it.category,
			Location: it.location,
			Staple:   it.staple,
		}
		if err := db.Where(models.Item{Name: item.Name}).FirstOrCreate(&item).Error; err != nil {
			return fmt.Errorf("seed item %s: %w", it.name, err)
		}
		var count int
		db.Model(&models.ItemBatch{}).Where("item_id = ?", item.ID).Count(&count)
		if count == 0 {
			now := time.Now()
			batch := models.ItemBatch{
				ItemID:       item.ID,
				QuantityText: it.qty,
				PurchasedOn:  &now,
				ExpiresOn:    it.expires,
			}
			if err := db.Create(&batch).Error; err != nil {
				return fmt.Errorf("seed batch for %s: %w", it.name, err)
			}
		}
	}

	recipes := []models.Recipe{
		{
			Title: "Chickpea Tomato Stew", Servings: 4, HandsOnMin: 15, TotalMin: 40,
			Difficulty: 2, Cuisine: "Mediterranean", Complexity: "FAMILIAR", Source: "PERSONAL",
			Equipment:    models.StringSlice{"STOVETOP"},
			Tags:         models.StringSlice{"vegetarian", "one-pot", "WEEKNIGHT"},
			Instructions: "Sauté aromatics, add chickpeas and tomatoes, simmer until thick.",
			Ingredients: []models.RecipeIngredient{
				{Name: "canned chickpeas", Required: true, QuantityText: "2 cans"},
				{Name: "canned crushed tomatoes", Required: true, QuantityText: "1 can"},
				{Name: "onion", Required: true},
				{Name: "garlic", Required: true},
				{Name: "cumin", Required: false},
			},
		},
		{
			Title: "Lemon Braised Chicken", Servings: 4, HandsOnMin: 25, TotalMin: 75,
			Difficulty: 3, Cuisine: "French", Complexity: "STRETCH", Source: "COOKBOOK",
			Equipment:    models.StringSlice{"OVEN", "STOVETOP"},
			Tags:         models.StringSlice{"comfort"},
			Seasons:      models.StringSlice{"FALL", "WINTER"},
			Instructions: "Brown the thighs, deglaze with broth and lemon, braise until tender.",
			Ingredients: []models.RecipeIngredient{
				{Name: "chicken thighs", Required: true, QuantityText: "1 lb"},
				{Name: "lemon", Required: true},
				{Name: "chicken broth", Required: true, Substitutions: models.StringSlice{"vegetable broth", "water"}},
				{Name: "butter", Required: false},
			},
		},
		{
			Title: "Garlic Butter Pasta", Servings: 2, HandsOnMin: 10, TotalMin: 20,
			Difficulty: 1, Cuisine: "Italian", Complexity: "FAMILIAR", Source: "FAMILY",
			Equipment:    models.StringSlice{"STOVETOP"},
			Tags:         models.StringSlice{"WEEKNIGHT", "quick"},
			Instructions: "Cook pasta, toss with browned garlic butter and pasta water.",
			Ingredients: []models.RecipeIngredient{
				{Name: "pasta", Required: true, QuantityText: "250g"},
				{Name: "butter", Required: true, Substitutions: models.StringSlice{"olive oil"}},
				{Name: "garlic", Required: true},
			},
		},
	}
	seedTechniques := map[string][]string{
		"Chickpea Tomato Stew":  {"sautéing", "reduction"},
		"Lemon Braised Chicken": {"braising", "deglazing"},
		"Garlic Butter Pasta":   {"sautéing"},
	}
	for _, r := range recipes {
		var existing models.Recipe
		if err := db.Where("title = ?", r.Title).First(&existing).Error; err == nil {
			continue
		} else if !gorm.IsRecordNotFoundError(err) {
			return fmt.Errorf("seed recipe lookup %s: %w", r.Title, err)
		}
		if err := db.Create(&r).Error; err != nil {
			return fmt.Errorf("seed recipe %s: %w", r.Title, err)
		}
		for _, tn := range seedTechniques[r.Title] {
			var tech models.Technique
			if err := db.Where("name = ?", suggest.Normalize(tn)).First(&tech).Error; err != nil {
				continue
			}
			link := models.RecipeTechnique{RecipeID: r.ID, TechniqueID: tech.ID}
			if err := db.Create(&link).Error; err != nil {
				return fmt.Errorf("seed technique link %s: %w", r.Title, err)
			}
		}
	}

	return nil
}

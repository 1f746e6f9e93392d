package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Technique is a named cooking skill. Comfort is the user's self-assessed
// level (0 untried, 1 learning, 2 comfortable, 3 confident) and evolves
// independently of any single recipe.
type Technique struct {
	ID          string    `gorm:"primary_key" json:"id"`
	Name        string    `gorm:"unique_index;not null" json:"name"`
	Description string    `json:"description,omitempty"`
	Difficulty  int       `json:"difficulty"`
	Comfort     int       `json:"comfort"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	Recipes []RecipeTechnique `gorm:"foreignkey:TechniqueID" json:"recipes,omitempty"`
}

// TableName sets the table name for Technique.
func (Technique) TableName() string { return "techniques" }

// BeforeCreate assigns a UUID primary key.
func (t *Technique) BeforeCreate(scope *gorm.Scope) error {
	if t.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// RecipeTechnique links recipes to the techniques they exercise.
type RecipeTechnique struct {
	ID          string `gorm:"primary_key" json:"id"`
	RecipeID    string `gorm:"index;not null" json:"recipeId"`
	TechniqueID string `gorm:"index;not null" json:"techniqueId"`

	Technique *Technique `gorm:"foreignkey:TechniqueID" json:"technique,omitempty"`
	Recipe    *Recipe    `gorm:"foreignkey:RecipeID" json:"recipe,omitempty"`
}

// TableName sets the table name for RecipeTechnique.
func (RecipeTechnique) TableName() string { return "recipe_techniques" }

func (rt *RecipeTechnique) BeforeCreate(scope *gorm.Scope) error {
	if rt.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// Recipe is a stored recipe with everything the suggestion scorer reads:
// ingredients, cook history and technique links.
type Recipe struct {
	ID           string      `gorm:"primary_key" json:"id"`
	Title        string      `gorm:"unique_index;not null" json:"title"`
	Servings     int         `gorm:"not null" json:"servings"`
	ServingsMax  *int        `json:"servingsMax,omitempty"`
	HandsOnMin   int         `json:"handsOnMin"`
	TotalMin     int         `json:"totalMin"`
	Difficulty   int         `json:"difficulty"`
	Equipment    StringSlice `gorm:"type:text" json:"equipment"`
	Tags         StringSlice `gorm:"type:text" json:"tags"`
	Seasons      StringSlice `gorm:"type:text" json:"seasons"`
	Instructions string      `gorm:"type:text" json:"instructions"`
	Source       string      `json:"source"`
	SourceRef    string      `json:"sourceRef,omitempty"`
	Cuisine      string      `json:"cuisine,omitempty"`
	Complexity   string      `json:"complexity"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`

	Ingredients []RecipeIngredient `gorm:"foreignkey:RecipeID" json:"ingredients"`
	CookLogs    []CookLog          `gorm:"foreignkey:RecipeID" json:"cookLogs"`
	Techniques  []RecipeTechnique  `gorm:"foreignkey:RecipeID" json:"techniques"`
}

// TableName sets the table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// BeforeCreate assigns a UUID primary key.
func (r *Recipe) BeforeCreate(scope *gorm.Scope) error {
	if r.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// RecipeIngredient is one line of a recipe's ingredient list. Substitutions
// are alternate ingredient names tried in declaration order when the primary
// name is out of stock.
type RecipeIngredient struct {
	ID            string      `gorm:"primary_key" json:"id"`
	RecipeID      string      `gorm:"index;not null" json:"recipeId"`
	Name          string      `gorm:"not null" json:"name"`
	Required      bool        `json:"required"`
	QuantityText  string      `json:"quantityText,omitempty"`
	Preparation   string      `json:"preparation,omitempty"`
	Substitutions StringSlice `gorm:"type:text" json:"substitutions"`
}

// TableName sets the table name for RecipeIngredient.
func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

func (i *RecipeIngredient) BeforeCreate(scope *gorm.Scope) error {
	if i.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

// CookLog is an immutable history record of one cooking of a recipe.
type CookLog struct {
	ID          string    `gorm:"primary_key" json:"id"`
	RecipeID    string    `gorm:"index;not null" json:"recipeId"`
	Rating      int       `gorm:"not null" json:"rating"`
	Notes       string    `json:"notes,omitempty"`
	WouldRepeat bool      `json:"wouldRepeat"`
	ServedTo    *int      `json:"servedTo,omitempty"`
	CookedOn    time.Time `gorm:"index" json:"cookedOn"`
	CreatedAt   time.Time `json:"createdAt"`

	Recipe *Recipe `gorm:"foreignkey:RecipeID" json:"recipe,omitempty"`
}

// TableName sets the table name for CookLog.
func (CookLog) TableName() string { return "cook_logs" }

func (l *CookLog) BeforeCreate(scope *gorm.Scope) error {
	if l.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// MealPlan assigns a recipe (or a freeform note) to one slot of one day.
// A day has at most one entry per slot; planners upsert on (date, slot).
type MealPlan struct {
	ID        string    `gorm:"primary_key" json:"id"`
	Date      time.Time `gorm:"not null;unique_index:idx_mealplan_date_slot" json:"date"`
	Slot      string    `gorm:"not null;unique_index:idx_mealplan_date_slot" json:"slot"`
	RecipeID  string    `json:"recipeId,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Servings  *int      `json:"servings,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Recipe *Recipe `gorm:"foreignkey:RecipeID" json:"recipe,omitempty"`
}

// TableName sets the table name for MealPlan.
func (MealPlan) TableName() string { return "meal_plans" }

func (p *MealPlan) BeforeCreate(scope *gorm.Scope) error {
	if p.ID == "" {
		return scope.SetColumn("ID", uuid.New().String())
	}
	return nil
}

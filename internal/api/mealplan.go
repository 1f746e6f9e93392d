package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"larder/internal/models"
)

// ListMealPlans returns plan entries, optionally bounded by ?start and ?end
// (RFC 3339 dates), ordered by day then slot.
func (s *Server) ListMealPlans(c *gin.Context) {
	query := s.db.Preload("Recipe").Order("date ASC").Order("slot ASC")

	if start := c.Query("start"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			badRequest(c, err)
			return
		}
		query = query.Where("date >= ?", t)
	}
	if end := c.Query("end"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			badRequest(c, err)
			return
		}
		query = query.Where("date <= ?", t)
	}

	var plans []models.MealPlan
	if err := query.Find(&plans).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// UpsertMealPlan sets the entry for one (date, slot), replacing whatever
// was planned there before.
func (s *Server) UpsertMealPlan(c *gin.Context) {
	var req struct {
		Date     time.Time `json:"date" binding:"required"`
		Slot     string    `json:"slot" binding:"required"`
		RecipeID string    `json:"recipeId"`
		Notes    string    `json:"notes"`
		Servings *int      `json:"servings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if !models.ValidValue(models.MealSlots, req.Slot) {
		badRequest(c, fmt.Errorf("invalid slot %q", req.Slot))
		return
	}
	if req.RecipeID != "" {
		var recipe models.Recipe
		if err := s.db.Where("id = ?", req.RecipeID).First(&recipe).Error; err != nil {
			notFound(c, "recipe")
			return
		}
	}

	var plan models.MealPlan
	err := s.db.Where("date = ? AND slot = ?", req.Date, req.Slot).First(&plan).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		internalError(c, err)
		return
	}
	isNew := gorm.IsRecordNotFoundError(err)

	plan.Date = req.Date
	plan.Slot = req.Slot
	plan.RecipeID = req.RecipeID
	plan.Notes = req.Notes
	plan.Servings = req.Servings

	if isNew {
		err = s.db.Create(&plan).Error
	} else {
		err = s.db.Save(&plan).Error
	}
	if err != nil {
		internalError(c, err)
		return
	}

	s.hub.Publish("mealplan.upserted", gin.H{"id": plan.ID, "date": plan.Date, "slot": plan.Slot})
	c.JSON(http.StatusOK, gin.H{"plan": plan})
}

// DeleteMealPlan clears one planned slot.
func (s *Server) DeleteMealPlan(c *gin.Context) {
	id := c.Param("id")

	var plan models.MealPlan
	if err := s.db.Where("id = ?", id).First(&plan).Error; err != nil {
		notFound(c, "meal plan")
		return
	}
	if err := s.db.Delete(&plan).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

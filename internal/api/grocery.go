package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"larder/internal/models"
	"larder/internal/suggest"
)

// ListGrocery returns the current shopping list, newest first.
func (s *Server) ListGrocery(c *gin.Context) {
	var items []models.GroceryItem
	if err := s.db.Order("created_at DESC").Find(&items).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// PlanGrocery rebuilds the shopping list from what the chosen recipes need
// and which staples have run dry. The previous list is discarded — the
// plan is a projection, not a ledger.
func (s *Server) PlanGrocery(c *gin.Context) {
	var req struct {
		RecipeIDs              []string `json:"recipeIds"`
		IncludeStaplesBelowPar *bool    `json:"includeStaplesBelowPar"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	includeStaples := req.IncludeStaplesBelowPar == nil || *req.IncludeStaplesBelowPar

	var items []models.Item
	if err := s.db.Preload("Batches").Find(&items).Error; err != nil {
		internalError(c, err)
		return
	}
	inStock := make(map[string]bool, len(items))
	for _, item := range items {
		inStock[suggest.Normalize(item.Name)] = true
	}

	type need struct {
		channel string
		reason  string
	}
	needed := map[string]need{}

	if len(req.RecipeIDs) > 0 {
		var recipes []models.Recipe
		err := s.db.Preload("Ingredients").Where("id IN (?)", req.RecipeIDs).Find(&recipes).Error
		if err != nil {
			internalError(c, err)
			return
		}
		for _, r := range recipes {
			for _, ing := range r.Ingredients {
				if !ing.Required {
					continue
				}
				n := suggest.Normalize(ing.Name)
				if !inStock[n] {
					needed[n] = need{channel: "IN_PERSON", reason: fmt.Sprintf("missing_for_recipe:%s", r.Title)}
				}
			}
		}
	}

	if includeStaples {
		// A staple with no batches has run out even though the item row
		// still exists.
		for _, item := range items {
			if item.Staple && len(item.Batches) == 0 {
				needed[suggest.Normalize(item.Name)] = need{channel: "SHIP", reason: "staple_missing"}
			}
		}
	}

	if err := s.db.Delete(&models.GroceryItem{}, "1 = 1").Error; err != nil {
		internalError(c, err)
		return
	}
	created := 0
	for name, meta := range needed {
		row := models.GroceryItem{Name: name, Channel: meta.channel, Reason: meta.reason}
		if err := s.db.Create(&row).Error; err != nil {
			internalError(c, err)
			return
		}
		created++
	}

	var all []models.GroceryItem
	if err := s.db.Order("created_at DESC").Find(&all).Error; err != nil {
		internalError(c, err)
		return
	}

	s.hub.Publish("grocery.planned", gin.H{"created": created})
	c.JSON(http.StatusOK, gin.H{"created": created, "items": all})
}

// UpdateGroceryItem toggles the done flag.
func (s *Server) UpdateGroceryItem(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Done *bool `json:"done" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var item models.GroceryItem
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		notFound(c, "grocery item")
		return
	}

	item.Done = *req.Done
	if err := s.db.Save(&item).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteGroceryItem removes one entry from the list.
func (s *Server) DeleteGroceryItem(c *gin.Context) {
	id := c.Param("id")

	var item models.GroceryItem
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		notFound(c, "grocery item")
		return
	}
	if err := s.db.Delete(&item).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

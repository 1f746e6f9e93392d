package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"larder/internal/models"
)

// ListCookLogs returns the cooking history, newest first, optionally
// filtered by recipe and date range.
func (s *Server) ListCookLogs(c *gin.Context) {
	query := s.db.Preload("Recipe").Order("cooked_on DESC")

	if recipeID := c.Query("recipeId"); recipeID != "" {
		query = query.Where("recipe_id = ?", recipeID)
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			badRequest(c, err)
			return
		}
		query = query.Where("cooked_on >= ?", t)
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			badRequest(c, err)
			return
		}
		query = query.Where("cooked_on <= ?", t)
	}

	var logs []models.CookLog
	if err := query.Find(&logs).Error; err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"logs": logs})
}

// CreateCookLog records one cooking of a recipe. WouldRepeat defaults to
// true when omitted; CookedOn defaults to now.
func (s *Server) CreateCookLog(c *gin.Context) {
	var req struct {
		RecipeID    string     `json:"recipeId" binding:"required"`
		Rating      int        `json:"rating" binding:"required,min=1,max=5"`
		Notes       string     `json:"notes"`
		WouldRepeat *bool      `json:"wouldRepeat"`
		ServedTo    *int       `json:"servedTo"`
		CookedOn    *time.Time `json:"cookedOn"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	var recipe models.Recipe
	if err := s.db.Where("id = ?", req.RecipeID).First(&recipe).Error; err != nil {
		notFound(c, "recipe")
		return
	}

	log := models.CookLog{
		RecipeID:    req.RecipeID,
		Rating:      req.Rating,
		Notes:       req.Notes,
		WouldRepeat: req.WouldRepeat == nil || *req.WouldRepeat,
		ServedTo:    req.ServedTo,
		CookedOn:    time.Now(),
	}
	if req.CookedOn != nil {
		log.CookedOn = *req.CookedOn
	}

	if err := s.db.Create(&log).Error; err != nil {
		internalError(c, err)
		return
	}

	s.hub.Publish("cooklog.created", gin.H{"id": log.ID, "recipeId": log.RecipeID, "rating": log.Rating})
	c.JSON(http.StatusCreated, gin.H{"log": log})
}

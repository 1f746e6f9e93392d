package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"larder/internal/models"
	"larder/internal/monitoring"
	"larder/internal/suggest"
)

var (
	occasions = []string{"WEEKNIGHT", "POTLUCK", "MEAL_PREP", "ANY"}
	seasons   = []string{"SPRING", "SUMMER", "FALL", "WINTER"}
)

func validateConstraints(c *suggest.Constraints) error {
	if c.Servings < 0 || c.MaxTotalMin < 0 {
		return fmt.Errorf("servings and maxTotalMin must be positive")
	}
	if c.Occasion != "" && !models.ValidValue(occasions, c.Occasion) {
		return fmt.Errorf("invalid occasion %q", c.Occasion)
	}
	if c.Season != "" && !models.ValidValue(seasons, c.Season) {
		return fmt.Errorf("invalid season %q", c.Season)
	}
	if c.Complexity != "" && c.Complexity != "ANY" && !models.ValidValue(models.Complexities, c.Complexity) {
		return fmt.Errorf("invalid complexity %q", c.Complexity)
	}
	return nil
}

// Suggest runs the full suggestion pass: snapshot the pantry, load the
// recipe set, build whichever history maps the request asks for, then rank.
// Everything is recomputed per request; nothing is cached or persisted.
func (s *Server) Suggest(c *gin.Context) {
	var constraints suggest.Constraints
	if err := c.ShouldBindJSON(&constraints); err != nil {
		badRequest(c, err)
		return
	}
	if err := validateConstraints(&constraints); err != nil {
		badRequest(c, err)
		return
	}

	start := time.Now()
	now := time.Now()

	var items []models.Item
	if err := s.db.Preload("Batches").Find(&items).Error; err != nil {
		internalError(c, err)
		return
	}
	snap := suggest.BuildSnapshot(items, now, s.config.Suggest.ExpiryHorizonDays)

	var recipes []models.Recipe
	err := s.db.
		Preload("Ingredients").
		Preload("CookLogs").
		Preload("Techniques.Technique").
		Find(&recipes).Error
	if err != nil {
		internalError(c, err)
		return
	}

	// Histories are optional dependencies: only pay for what the request
	// turns on.
	var cuisineHistory suggest.CuisineHistory
	if constraints.WantVariety {
		cuisineHistory = suggest.BuildCuisineHistory(recipes)
	}
	var techniqueComfort suggest.TechniqueComfort
	if constraints.WantGrowth {
		var techniques []models.Technique
		if err := s.db.Find(&techniques).Error; err != nil {
			internalError(c, err)
			return
		}
		techniqueComfort = suggest.BuildTechniqueComfort(techniques)
	}

	results := suggest.Rank(recipes, snap, constraints, cuisineHistory, techniqueComfort, now)

	monitoring.ObserveSuggest(len(results), time.Since(start))
	s.log.Debug("suggestion pass",
		zap.Int("recipes", len(recipes)),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	c.JSON(http.StatusOK, gin.H{"results": results})
}

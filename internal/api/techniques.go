package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"larder/internal/models"
	"larder/internal/suggest"
)

// ListTechniques returns all techniques with the recipes that use them.
func (s *Server) ListTechniques(c *gin.Context) {
	var techniques []models.Technique
	err := s.db.
		Preload("Recipes.Recipe").
		Order("name ASC").
		Find(&techniques).Error
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"techniques": techniques})
}

// CreateTechnique upserts a technique by normalized name. Comfort always
// starts at 0 (untried); it only moves through the comfort endpoint.
func (s *Server) CreateTechnique(c *gin.Context) {
	var req struct {
		Name        string `json:"name" binding:"required"`
		Description string `json:"description"`
		Difficulty  int    `json:"difficulty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if req.Difficulty != 0 && (req.Difficulty < 1 || req.Difficulty > 5) {
		badRequest(c, fmt.Errorf("difficulty must be 1-5, got %d", req.Difficulty))
		return
	}
	if req.Difficulty == 0 {
		req.Difficulty = 2
	}

	name := suggest.Normalize(req.Name)

	var tech models.Technique
	err := s.db.Where("name = ?", name).First(&tech).Error
	switch {
	case gorm.IsRecordNotFoundError(err):
		tech = models.Technique{
			Name:        name,
			Description: req.Description,
			Difficulty:  req.Difficulty,
			Comfort:     0,
		}
		if err := s.db.Create(&tech).Error; err != nil {
			internalError(c, err)
			return
		}
	case err != nil:
		internalError(c, err)
		return
	default:
		if req.Description != "" {
			tech.Description = req.Description
		}
		tech.Difficulty = req.Difficulty
		if err := s.db.Save(&tech).Error; err != nil {
			internalError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"technique": tech})
}

// UpdateTechniqueComfort moves the user's self-assessed skill level.
func (s *Server) UpdateTechniqueComfort(c *gin.Context) {
	id := c.Param("id")

	var req struct {
		Comfort *int `json:"comfort" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if *req.Comfort < 0 || *req.Comfort > 3 {
		badRequest(c, fmt.Errorf("comfort must be 0-3, got %d", *req.Comfort))
		return
	}

	var tech models.Technique
	if err := s.db.Where("id = ?", id).First(&tech).Error; err != nil {
		notFound(c, "technique")
		return
	}

	tech.Comfort = *req.Comfort
	if err := s.db.Save(&tech).Error; err != nil {
		internalError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"technique": tech})
}

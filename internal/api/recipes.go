package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"

	"larder/internal/models"
	"larder/internal/suggest"
)

type ingredientRequest struct {
	Name          string   `json:"name" binding:"required"`
	Required      *bool    `json:"required"`
	QuantityText  string   `json:"quantityText"`
	Preparation   string   `json:"preparation"`
	Substitutions []string `json:"substitutions"`
}

type recipeRequest struct {
	Title        string              `json:"title" binding:"required"`
	Servings     int                 `json:"servings"`
	ServingsMax  *int                `json:"servingsMax"`
	HandsOnMin   int                 `json:"handsOnMin"`
	TotalMin     int                 `json:"totalMin"`
	Difficulty   int                 `json:"difficulty"`
	Equipment    []string            `json:"equipment"`
	Tags         []string            `json:"tags"`
	Seasons      []string            `json:"seasons"`
	Instructions string              `json:"instructions" binding:"required"`
	Ingredients  []ingredientRequest `json:"ingredients" binding:"required,min=1,dive"`
	Source       string              `json:"source"`
	SourceRef    string              `json:"sourceRef"`
	Cuisine      string              `json:"cuisine"`
	Complexity   string              `json:"complexity"`
	Techniques   []string            `json:"techniques"`
}

func (r *recipeRequest) validate() error {
	if r.Source != "" && !models.ValidValue(models.RecipeSources, r.Source) {
		return fmt.Errorf("invalid source %q", r.Source)
	}
	if r.Complexity != "" && !models.ValidValue(models.Complexities, r.Complexity) {
		return fmt.Errorf("invalid complexity %q", r.Complexity)
	}
	if r.Difficulty != 0 && (r.Difficulty < 1 || r.Difficulty > 5) {
		return fmt.Errorf("difficulty must be 1-5, got %d", r.Difficulty)
	}
	if r.Servings < 0 || r.TotalMin < 0 || r.HandsOnMin < 0 {
		return fmt.Errorf("time and servings values must be non-negative")
	}
	return nil
}

// applyDefaults fills the fields the importer and the form both leave blank.
func (r *recipeRequest) applyDefaults() {
	if r.Servings == 0 {
		r.Servings = 2
	}
	if r.HandsOnMin == 0 {
		r.HandsOnMin = 15
	}
	if r.TotalMin == 0 {
		r.TotalMin = 30
	}
	if r.Difficulty == 0 {
		r.Difficulty = 2
	}
	if r.Source == "" {
		r.Source = "PERSONAL"
	}
	if r.Complexity == "" {
		r.Complexity = "FAMILIAR"
	}
}

func (r *recipeRequest) ingredientModels() []models.RecipeIngredient {
	out := make([]models.RecipeIngredient, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		required := true
		if ing.Required != nil {
			required = *ing.Required
		}
		out = append(out, models.RecipeIngredient{
			Name:          ing.Name,
			Required:      required,
			QuantityText:  ing.QuantityText,
			Preparation:   ing.Preparation,
			Substitutions: models.StringSlice(ing.Substitutions),
		})
	}
	return out
}

// ListRecipes returns every recipe with ingredients, cook logs (newest
// first) and resolved technique links.
func (s *Server) ListRecipes(c *gin.Context) {
	var recipes []models.Recipe
	err := s.db.
		Preload("Ingredients").
		Preload("CookLogs", func(db *gorm.DB) *gorm.DB { return db.Order("cooked_on DESC") }).
		Preload("Techniques.Technique").
		Order("title ASC").
		Find(&recipes).Error
	if err != nil {
		internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// findOrCreateTechniques resolves technique names into link rows, creating
// unknown techniques at comfort 0.
func (s *Server) findOrCreateTechniques(names []string) ([]models.Technique, error) {
	var out []models.Technique
	for _, raw := range names {
		name := suggest.Normalize(raw)
		if name == "" {
			continue
		}
		var tech models.Technique
		err := s.db.Where("name = ?", name).First(&tech).Error
		if gorm.IsRecordNotFoundError(err) {
			tech = models.Technique{Name: name, Difficulty: 2, Comfort: 0}
			err = s.db.Create(&tech).Error
		}
		if err != nil {
			return nil, err
		}
		out = append(out, tech)
	}
	return out, nil
}

func (s *Server) replaceRecipeChildren(recipe *models.Recipe, req *recipeRequest) error {
	if err := s.db.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	for _, ing := range req.ingredientModels() {
		ing.RecipeID = recipe.ID
		if err := s.db.Create(&ing).Error; err != nil {
			return err
		}
	}

	if err := s.db.Where("recipe_id = ?", recipe.ID).Delete(&models.RecipeTechnique{}).Error; err != nil {
		return err
	}
	techs, err := s.findOrCreateTechniques(req.Techniques)
	if err != nil {
		return err
	}
	for _, tech := range techs {
		link := models.RecipeTechnique{RecipeID: recipe.ID, TechniqueID: tech.ID}
		if err := s.db.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func applyRecipeRequest(recipe *models.Recipe, req *recipeRequest) {
	recipe.Title = req.Title
	recipe.Servings = req.Servings
	recipe.ServingsMax = req.ServingsMax
	recipe.HandsOnMin = req.HandsOnMin
	recipe.TotalMin = req.TotalMin
	recipe.Difficulty = req.Difficulty
	recipe.Equipment = models.StringSlice(req.Equipment)
	recipe.Tags = models.StringSlice(req.Tags)
	recipe.Seasons = models.StringSlice(req.Seasons)
	recipe.Instructions = req.Instructions
	recipe.Source = req.Source
	recipe.SourceRef = req.SourceRef
	recipe.Cuisine = req.Cuisine
	recipe.Complexity = req.Complexity
}

// CreateRecipe upserts by title: importing the same recipe twice replaces
// its ingredient list instead of duplicating the recipe.
func (s *Server) CreateRecipe(c *gin.Context) {
	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.validate(); err != nil {
		badRequest(c, err)
		return
	}
	req.applyDefaults()

	var recipe models.Recipe
	err := s.db.Where("title = ?", req.Title).First(&recipe).Error
	if err != nil && !gorm.IsRecordNotFoundError(err) {
		internalError(c, err)
		return
	}
	isNew := gorm.IsRecordNotFoundError(err)

	applyRecipeRequest(&recipe, &req)
	if isNew {
		err = s.db.Create(&recipe).Error
	} else {
		err = s.db.Save(&recipe).Error
	}
	if err != nil {
		internalError(c, err)
		return
	}

	if err := s.replaceRecipeChildren(&recipe, &req); err != nil {
		internalError(c, err)
		return
	}

	s.hub.Publish("recipe.upserted", gin.H{"id": recipe.ID, "title": recipe.Title})
	status := http.StatusOK
	if isNew {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"recipe": recipe})
}

// UpdateRecipe replaces a recipe (and its children) by id.
func (s *Server) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")

	var req recipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	if err := req.validate(); err != nil {
		badRequest(c, err)
		return
	}
	req.applyDefaults()

	var recipe models.Recipe
	if err := s.db.Where("id = ?", id).First(&recipe).Error; err != nil {
		notFound(c, "recipe")
		return
	}

	applyRecipeRequest(&recipe, &req)
	if err := s.db.Save(&recipe).Error; err != nil {
		internalError(c, err)
		return
	}
	if err := s.replaceRecipeChildren(&recipe, &req); err != nil {
		internalError(c, err)
		return
	}

	s.hub.Publish("recipe.upserted", gin.H{"id": recipe.ID, "title": recipe.Title})
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// DeleteRecipe removes a recipe and its dependent rows.
func (s *Server) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")

	var recipe models.Recipe
	if err := s.db.Where("id = ?", id).First(&recipe).Error; err != nil {
		notFound(c, "recipe")
		return
	}

	for _, child := range []interface{}{&models.RecipeIngredient{}, &models.CookLog{}, &models.RecipeTechnique{}} {
		if err := s.db.Where("recipe_id = ?", id).Delete(child).Error; err != nil {
			internalError(c, err)
			return
		}
	}
	if err := s.db.Delete(&recipe).Error; err != nil {
		internalError(c, err)
		return
	}

	s.hub.Publish("recipe.deleted", gin.H{"id": id})
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RecipeCost estimates what the recipe costs to make from the latest batch
// price (or default price) of each matched inventory item.
func (s *Server) RecipeCost(c *gin.Context) {
	id := c.Param("id")

	var recipe models.Recipe
	if err := s.db.Preload("Ingredients").Where("id = ?", id).First(&recipe).Error; err != nil {
		notFound(c, "recipe")
		return
	}

	var items []models.Item
	err := s.db.
		Preload("Batches", func(db *gorm.DB) *gorm.DB { return db.Order("created_at DESC") }).
		Find(&items).Error
	if err != nil {
		internalError(c, err)
		return
	}

	costByName := make(map[string]int, len(items))
	for _, item := range items {
		var cost *int
		if len(item.Batches) > 0 && item.Batches[0].CostCents != nil {
			cost = item.Batches[0].CostCents
		} else {
			cost = item.DefaultCostCents
		}
		if cost != nil {
			costByName[suggest.Normalize(item.Name)] = *cost
		}
	}

	type ingredientCost struct {
		Name      string `json:"name"`
		CostCents *int   `json:"costCents"`
		Matched   bool   `json:"matched"`
	}

	costs := make([]ingredientCost, 0, len(recipe.Ingredients))
	totalCents := 0
	matched := 0
	hasUnmatchedRequired := false
	for _, ing := range recipe.Ingredients {
		if cost, ok := costByName[suggest.Normalize(ing.Name)]; ok {
			cents := cost
			costs = append(costs, ingredientCost{Name: ing.Name, CostCents: &cents, Matched: true})
			totalCents += cents
			matched++
		} else {
			costs = append(costs, ingredientCost{Name: ing.Name, Matched: false})
			if ing.Required {
				hasUnmatchedRequired = true
			}
		}
	}

	var costPerServing *int
	if recipe.Servings > 0 {
		per := int(float64(totalCents)/float64(recipe.Servings) + 0.5)
		costPerServing = &per
	}

	c.JSON(http.StatusOK, gin.H{
		"recipeId":         recipe.ID,
		"title":            recipe.Title,
		"servings":         recipe.Servings,
		"ingredientCosts":  costs,
		"totalCents":       totalCents,
		"costPerServing":   costPerServing,
		"complete":         !hasUnmatchedRequired,
		"matchedCount":     matched,
		"totalIngredients": len(costs),
	})
}

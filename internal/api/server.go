package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"

	"larder/internal/config"
	"larder/internal/monitoring"
)

// Server wires the HTTP surface: CRUD routes for the pantry, recipes,
// history, techniques, planning — and the suggestion endpoint that runs
// the scorer.
type Server struct {
	Router *gin.Engine

	db     *gorm.DB
	log    *zap.Logger
	hub    *Hub
	config *config.Config
}

// NewServer builds the router with middleware and all routes registered.
// The events hub is started here and stops when the process does.
func NewServer(db *gorm.DB, logger *zap.Logger, cfg *config.Config) *Server {
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		Router: router,
		db:     db,
		log:    logger,
		hub:    NewHub(logger),
		config: cfg,
	}
	go s.hub.Run()

	router.Use(requestLogger(logger))
	router.Use(monitoring.Middleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.Origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.Router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	s.Router.GET("/ws", s.handleWebSocket)

	v1 := s.Router.Group("/api/v1")
	{
		// Pantry
		v1.GET("/inventory/items", s.ListItems)
		v1.POST("/inventory/items", s.CreateItem)
		v1.PUT("/inventory/items/:id", s.UpdateItem)
		v1.DELETE("/inventory/items/:id", s.DeleteItem)
		v1.POST("/inventory/import", s.ImportInventory)

		// Recipes
		v1.GET("/recipes", s.ListRecipes)
		v1.POST("/recipes", s.CreateRecipe)
		v1.PUT("/recipes/:id", s.UpdateRecipe)
		v1.DELETE("/recipes/:id", s.DeleteRecipe)
		v1.GET("/recipes/:id/cost", s.RecipeCost)

		// Cooking history
		v1.GET("/cooklogs", s.ListCookLogs)
		v1.POST("/cooklogs", s.CreateCookLog)

		// Techniques
		v1.GET("/techniques", s.ListTechniques)
		v1.POST("/techniques", s.CreateTechnique)
		v1.PUT("/techniques/:id/comfort", s.UpdateTechniqueComfort)

		// Suggestions (the core)
		v1.POST("/suggest", s.Suggest)

		// Grocery
		v1.GET("/grocery", s.ListGrocery)
		v1.POST("/grocery/plan", s.PlanGrocery)
		v1.PUT("/grocery/:id", s.UpdateGroceryItem)
		v1.DELETE("/grocery/:id", s.DeleteGroceryItem)

		// Meal plan
		v1.GET("/mealplan", s.ListMealPlans)
		v1.POST("/mealplan", s.UpsertMealPlan)
		v1.DELETE("/mealplan/:id", s.DeleteMealPlan)

		// Stats
		v1.GET("/stats", s.Stats)
	}
}

// requestLogger emits one structured line per request.
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func notFound(c *gin.Context, what string) {
	c.JSON(http.StatusNotFound, gin.H{"error": what + " not found"})
}

func internalError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

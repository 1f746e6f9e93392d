package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"larder/internal/models"
)

func TestBuildCuisineHistory(t *testing.T) {
	older := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)

	recipes := []models.Recipe{
		{
			Title:   "Tacos",
			Cuisine: "Mexican",
			CookLogs: []models.CookLog{
				{Rating: 4, CookedOn: older},
				{Rating: 5, CookedOn: newer},
			},
		},
		{
			Title:   "Enchiladas",
			Cuisine: "  MEXICAN ", // normalized into the same bucket
			CookLogs: []models.CookLog{
				{Rating: 3, CookedOn: older},
			},
		},
		{
			Title:    "Mystery Stew", // no cuisine: skipped
			CookLogs: []models.CookLog{{Rating: 2, CookedOn: newer}},
		},
		{
			Title:   "Pho",
			Cuisine: "Vietnamese", // no cook logs: no entry
		},
	}

	history := BuildCuisineHistory(recipes)

	assert.Len(t, history, 1)
	assert.Equal(t, newer, history["mexican"], "keeps the most recent date across recipes")
	_, ok := history["vietnamese"]
	assert.False(t, ok, "cuisine with no logs has no entry")
}

func TestBuildTechniqueComfort(t *testing.T) {
	comfort := BuildTechniqueComfort([]models.Technique{
		{Name: "Braising", Comfort: 2},
		{Name: "knife_skills", Comfort: 1},
		{Name: "emulsification", Comfort: 0},
	})

	assert.Equal(t, TechniqueComfort{
		"braising":       2,
		"knife skills":   1,
		"emulsification": 0,
	}, comfort)
}

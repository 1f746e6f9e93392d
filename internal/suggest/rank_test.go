package suggest

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"larder/internal/models"
)

func intPtr(v int) *int { return &v }

func TestRankServingsWindow(t *testing.T) {
	recipes := []models.Recipe{
		{ID: "small", Title: "Small", Servings: 2},
		{ID: "scalable", Title: "Scalable", Servings: 2, ServingsMax: intPtr(6)},
		{ID: "big", Title: "Big", Servings: 10},
	}
	now := time.Now()

	results := Rank(recipes, stockOf(), Constraints{Servings: 6}, nil, nil, now)

	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.RecipeID
	}
	// 6 is outside [0,4] for "small", inside [0,8] for "scalable" and
	// outside [8,12] for "big".
	assert.NotContains(t, ids, "small")
	assert.Contains(t, ids, "scalable")
	assert.NotContains(t, ids, "big")
}

func TestRankTechniqueFilter(t *testing.T) {
	recipes := []models.Recipe{
		{
			ID: "braise", Title: "Braise", Servings: 2,
			Techniques: []models.RecipeTechnique{techniqueLink("Braising")},
		},
		{
			ID: "fry", Title: "Fry", Servings: 2,
			Techniques: []models.RecipeTechnique{techniqueLink("frying")},
		},
		{ID: "none", Title: "None", Servings: 2},
	}

	results := Rank(recipes, stockOf(), Constraints{Techniques: []string{"braising", "roasting"}}, nil, nil, time.Now())

	require.Len(t, results, 1)
	assert.Equal(t, "braise", results[0].RecipeID, "OR semantics over the allow-list, normalized match")
}

func TestRankSortsDescendingAndCaps(t *testing.T) {
	var recipes []models.Recipe
	for i := 0; i < 15; i++ {
		r := models.Recipe{
			ID:       fmt.Sprintf("r%02d", i),
			Title:    fmt.Sprintf("Recipe %02d", i),
			Servings: 2,
		}
		// Give later recipes better coverage so order must be reshuffled.
		if i%2 == 0 {
			r.Ingredients = []models.RecipeIngredient{requiredIngredient("unobtainium")}
		}
		recipes = append(recipes, r)
	}

	results := Rank(recipes, stockOf(), Constraints{}, nil, nil, time.Now())

	require.Len(t, results, MaxResults)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestRankStableTieBreak(t *testing.T) {
	// Identical recipes score identically; input order is the tie-break.
	recipes := []models.Recipe{
		{ID: "first", Title: "First", Servings: 2},
		{ID: "second", Title: "Second", Servings: 2},
		{ID: "third", Title: "Third", Servings: 2},
	}

	results := Rank(recipes, stockOf(), Constraints{}, nil, nil, time.Now())

	require.Len(t, results, 3)
	assert.Equal(t, "first", results[0].RecipeID)
	assert.Equal(t, "second", results[1].RecipeID)
	assert.Equal(t, "third", results[2].RecipeID)
}

func TestRankNoServingsConstraintKeepsAll(t *testing.T) {
	recipes := []models.Recipe{
		{ID: "a", Title: "A", Servings: 2},
		{ID: "b", Title: "B", Servings: 12},
	}

	results := Rank(recipes, stockOf(), Constraints{}, nil, nil, time.Now())
	assert.Len(t, results, 2)
}

package suggest

import (
	"sort"
	"time"

	"larder/internal/models"
)

// MaxResults caps how many suggestions a single request returns.
const MaxResults = 10

// qualifies applies the hard pre-filters that exclude a recipe before
// scoring: the servings window and the technique allow-list.
func qualifies(recipe *models.Recipe, constraints Constraints, techniqueFilter []string) bool {
	// Loose servings window: +-2 around the recipe's range, since recipes
	// scale a bit in practice.
	if constraints.Servings > 0 && recipe.Servings > 0 {
		minServes := recipe.Servings
		maxServes := recipe.Servings
		if recipe.ServingsMax != nil {
			maxServes = *recipe.ServingsMax
		}
		if constraints.Servings < minServes-2 || constraints.Servings > maxServes+2 {
			return false
		}
	}

	// Technique allow-list: at least one match (OR semantics).
	if len(techniqueFilter) > 0 {
		found := false
		for _, rt := range recipe.Techniques {
			if rt.Technique == nil {
				continue
			}
			n := Normalize(rt.Technique.Name)
			for _, want := range techniqueFilter {
				if n == want {
					found = true
					break
				}
			}
			if found {
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Rank filters, scores and orders the candidate recipes, returning at most
// MaxResults sorted by score descending. Equal scores keep input order
// (stable sort) — that is the tie-break policy.
func Rank(
	recipes []models.Recipe,
	snap Snapshot,
	constraints Constraints,
	cuisineHistory CuisineHistory,
	techniqueComfort TechniqueComfort,
	now time.Time,
) []Result {
	techniqueFilter := NormalizeAll(constraints.Techniques)

	results := make([]Result, 0, len(recipes))
	for i := range recipes {
		if !qualifies(&recipes[i], constraints, techniqueFilter) {
			continue
		}
		results = append(results, ScoreRecipe(&recipes[i], snap, constraints, cuisineHistory, techniqueComfort, now))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > MaxResults {
		results = results[:MaxResults]
	}
	return results
}

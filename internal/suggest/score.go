package suggest

import (
	"fmt"
	"math"
	"strings"
	"time"

	"larder/internal/models"
)

// Constraints is the validated suggestion request. Zero values mean "not
// constrained": the upstream handler rejects non-positive numbers, so 0 is
// free to stand in for absent.
type Constraints struct {
	Servings    int      `json:"servings"`
	MaxTotalMin int      `json:"maxTotalMin"`
	Equipment   []string `json:"equipment"`
	TagsInclude []string `json:"tagsInclude"`
	TagsExclude []string `json:"tagsExclude"`
	MustUse     []string `json:"mustUse"`
	Occasion    string   `json:"occasion"`
	Cuisine     string   `json:"cuisine"`
	WantVariety bool     `json:"wantVariety"`
	WantGrowth  bool     `json:"wantGrowth"`
	Complexity  string   `json:"complexity"`
	Season      string   `json:"season"`
	Techniques  []string `json:"techniques"`
}

// Result is one scored suggestion, ready to serialize as-is. Score is
// ephemeral and recomputed per request, never persisted.
type Result struct {
	RecipeID   string              `json:"recipeId"`
	Title      string              `json:"title"`
	Score      float64             `json:"score"`
	Have       []string            `json:"have"`
	Missing    []string            `json:"missing"`
	Swaps      map[string][]string `json:"swaps"`
	Why        []string            `json:"why"`
	Cuisine    string              `json:"cuisine,omitempty"`
	Complexity string              `json:"complexity,omitempty"`
	Techniques []string            `json:"techniques,omitempty"`
}

func hasTag(recipe *models.Recipe, tag string) bool {
	n := Normalize(tag)
	for _, t := range recipe.Tags {
		if Normalize(t) == n {
			return true
		}
	}
	return false
}

// inSeason: a recipe with no seasons listed is valid in any season.
func inSeason(recipe *models.Recipe, season string) bool {
	if len(recipe.Seasons) == 0 {
		return true
	}
	n := Normalize(season)
	for _, s := range recipe.Seasons {
		if Normalize(s) == n {
			return true
		}
	}
	return false
}

// hasEquipment requires every constrained item to appear in the recipe's
// equipment list (logical AND, not any-match).
func hasEquipment(recipe *models.Recipe, required []string) bool {
	if len(required) == 0 {
		return true
	}
	equip := make(map[string]bool, len(recipe.Equipment))
	for _, e := range recipe.Equipment {
		equip[Normalize(e)] = true
	}
	for _, e := range required {
		if !equip[Normalize(e)] {
			return false
		}
	}
	return true
}

// ScoreRecipe runs the weighted-heuristic ranking for one recipe: ingredient
// coverage with substitution fallback, expiration urgency, time/equipment/tag
// fit, cuisine variety, technique growth and cook-log sentiment, accumulated
// into one score with human-readable reasons. Pure and deterministic — the
// clock comes in through now, and nothing is mutated.
//
// The steps are additive and order-independent; evaluation order only fixes
// the order reasons appear in Why.
func ScoreRecipe(
	recipe *models.Recipe,
	snap Snapshot,
	constraints Constraints,
	cuisineHistory CuisineHistory,
	techniqueComfort TechniqueComfort,
	now time.Time,
) Result {
	var required, optional []models.RecipeIngredient
	for _, ing := range recipe.Ingredients {
		if ing.Required {
			required = append(required, ing)
		} else {
			optional = append(optional, ing)
		}
	}

	have := []string{}
	missing := []string{}
	swaps := map[string][]string{}

	for _, ing := range required {
		if snap.InStock[Normalize(ing.Name)] {
			have = append(have, ing.Name)
			continue
		}
		// Try substitutions in declaration order.
		subs := make([]string, 0, len(ing.Substitutions))
		for _, s := range ing.Substitutions {
			if s != "" {
				subs = append(subs, s)
			}
		}
		hit := ""
		for _, s := range subs {
			if snap.InStock[Normalize(s)] {
				hit = s
				break
			}
		}
		if hit != "" {
			have = append(have, fmt.Sprintf("%s (swap: %s)", ing.Name, hit))
			swaps[ing.Name] = []string{hit}
		} else {
			missing = append(missing, ing.Name)
			if len(subs) > 0 {
				swaps[ing.Name] = subs
			}
		}
	}

	// Coverage is king. The flat per-missing penalty stacks on top of the
	// coverage deduction on purpose — missing required items should hurt.
	requiredCount := len(required)
	if requiredCount < 1 {
		requiredCount = 1
	}
	missingCount := len(missing)
	coverage := float64(requiredCount-missingCount) / float64(requiredCount)

	score := 0.0
	why := []string{}

	score += coverage * 60
	why = append(why, fmt.Sprintf("Coverage %.0f%%", coverage*100))

	score -= float64(missingCount) * 12
	if missingCount > 0 {
		why = append(why, fmt.Sprintf("Missing %d required", missingCount))
	}

	// Expiring bonus: any ingredient, required or optional.
	usesExpiring := false
	for _, ing := range recipe.Ingredients {
		if snap.Expiring[Normalize(ing.Name)] {
			usesExpiring = true
			break
		}
	}
	if usesExpiring {
		score += 12
		why = append(why, "Uses expiring item")
	}

	// Must-use bonus/penalty.
	if len(constraints.MustUse) > 0 {
		recipeIngs := make(map[string]bool, len(recipe.Ingredients))
		for _, ing := range recipe.Ingredients {
			recipeIngs[Normalize(ing.Name)] = true
		}
		hitCount := 0
		for _, m := range constraints.MustUse {
			if recipeIngs[Normalize(m)] {
				hitCount++
			}
		}
		score += float64(hitCount) * 8
		if hitCount > 0 {
			why = append(why, fmt.Sprintf("Hits %d/%d must-use", hitCount, len(constraints.MustUse)))
		} else {
			score -= 8
		}
	}

	// Time fit: small bonus inside the budget, capped scaling penalty over.
	if constraints.MaxTotalMin > 0 {
		delta := recipe.TotalMin - constraints.MaxTotalMin
		if delta <= 0 {
			score += 8
			why = append(why, "Within time")
		} else {
			score -= math.Min(20, float64(delta)*0.6)
			why = append(why, fmt.Sprintf("Over time by %dm", delta))
		}
	}

	// Equipment fit. Heaviest penalty in the system: a recipe needing
	// hardware you don't have is effectively disqualified without being
	// hard-filtered.
	if len(constraints.Equipment) > 0 {
		if hasEquipment(recipe, constraints.Equipment) {
			score += 8
			why = append(why, "Equipment match")
		} else {
			score -= 25
			why = append(why, "Equipment mismatch")
		}
	}

	// Tags include/exclude.
	for _, t := range constraints.TagsInclude {
		if hasTag(recipe, t) {
			score += 5
		} else {
			score -= 6
		}
	}
	for _, t := range constraints.TagsExclude {
		if hasTag(recipe, t) {
			score -= 10
		}
	}

	// Occasion is a soft tag lookup, not equipment-grade.
	if constraints.Occasion != "" && constraints.Occasion != "ANY" {
		if hasTag(recipe, constraints.Occasion) {
			score += 6
		} else {
			score -= 3
		}
	}

	// Season fit.
	if constraints.Season != "" {
		if inSeason(recipe, constraints.Season) {
			score += 5
			why = append(why, "In season")
		} else {
			score -= 8
		}
	}

	// Cuisine filter and variety.
	recipeCuisine := ""
	if recipe.Cuisine != "" {
		recipeCuisine = Normalize(recipe.Cuisine)
	}

	if constraints.Cuisine != "" {
		if recipeCuisine == Normalize(constraints.Cuisine) {
			score += 10
			why = append(why, fmt.Sprintf("Cuisine: %s", recipe.Cuisine))
		} else {
			score -= 15
		}
	}

	if constraints.WantVariety && cuisineHistory != nil && recipeCuisine != "" {
		if lastCooked, ok := cuisineHistory[recipeCuisine]; !ok {
			score += 15
			why = append(why, "New cuisine!")
		} else {
			daysAgo := now.Sub(lastCooked).Hours() / 24
			if daysAgo > 21 {
				score += 8
				why = append(why, "Cuisine variety")
			} else if daysAgo < 7 {
				score -= 4
			}
		}
	}

	// Complexity filter.
	if constraints.Complexity != "" && constraints.Complexity != "ANY" {
		if recipe.Complexity == constraints.Complexity {
			score += 8
			why = append(why, fmt.Sprintf("Complexity: %s", strings.ToLower(recipe.Complexity)))
		} else {
			score -= 5
		}
	}

	// Growth: reward techniques not yet mastered. The learning bonus and the
	// practice bonus are mutually exclusive — practice only fires when every
	// technique is at least "learning" and at least one is exactly that.
	techniqueNames := make([]string, 0, len(recipe.Techniques))
	var recipeTechniques []models.Technique
	for _, rt := range recipe.Techniques {
		if rt.Technique != nil {
			recipeTechniques = append(recipeTechniques, *rt.Technique)
			techniqueNames = append(techniqueNames, rt.Technique.Name)
		}
	}

	if constraints.WantGrowth && techniqueComfort != nil && len(recipeTechniques) > 0 {
		var learning []string
		practiceOps := 0
		for _, t := range recipeTechniques {
			comfort := techniqueComfort[Normalize(t.Name)]
			if comfort < 2 {
				learning = append(learning, t.Name)
			}
			if comfort == 1 {
				practiceOps++
			}
		}
		if len(learning) > 0 {
			score += math.Min(float64(len(learning))*6, 15)
			why = append(why, fmt.Sprintf("Learn: %s", strings.Join(learning, ", ")))
		} else if practiceOps > 0 {
			score += 4
			why = append(why, "Practice opportunity")
		}
	}

	// History sentiment: ratings centered on neutral 3, recency pressure
	// against near-repeats, and the wouldRepeat verdict. "Wouldn't repeat"
	// short-circuits the favorite bonus.
	if len(recipe.CookLogs) > 0 {
		sum := 0
		last := recipe.CookLogs[0].CookedOn
		hasNoRepeat := false
		for _, log := range recipe.CookLogs {
			sum += log.Rating
			if log.CookedOn.After(last) {
				last = log.CookedOn
			}
			if !log.WouldRepeat {
				hasNoRepeat = true
			}
		}
		avg := float64(sum) / float64(len(recipe.CookLogs))
		score += (avg - 3) * 6
		if now.Sub(last).Hours()/24 < 14 {
			score -= 6
		}
		if avg >= 4 {
			why = append(why, "High rated")
		}
		if hasNoRepeat {
			score -= 8
			why = append(why, "Marked wouldn't repeat")
		} else if avg >= 4 {
			score += 4
			why = append(why, "Favorite")
		}
	}

	return Result{
		RecipeID:   recipe.ID,
		Title:      recipe.Title,
		Score:      math.Round(score*10) / 10,
		Have:       have,
		Missing:    missing,
		Swaps:      swaps,
		Why:        why,
		Cuisine:    recipe.Cuisine,
		Complexity: recipe.Complexity,
		Techniques: techniqueNames,
	}
}

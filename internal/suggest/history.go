package suggest

import (
	"time"

	"larder/internal/models"
)

// CuisineHistory maps a normalized cuisine name to the most recent date a
// recipe of that cuisine was cooked.
type CuisineHistory map[string]time.Time

// TechniqueComfort maps a normalized technique name to the user's comfort
// level (0-3).
type TechniqueComfort map[string]int

// BuildCuisineHistory folds cook logs into a per-cuisine most-recent-cooked
// map. Recipes without a cuisine are skipped. Built fresh per suggestion
// request and only when variety scoring is requested.
func BuildCuisineHistory(recipes []models.Recipe) CuisineHistory {
	history := make(CuisineHistory)
	for _, r := range recipes {
		if r.Cuisine == "" {
			continue
		}
		cuisine := Normalize(r.Cuisine)
		for _, log := range r.CookLogs {
			if existing, ok := history[cuisine]; !ok || log.CookedOn.After(existing) {
				history[cuisine] = log.CookedOn
			}
		}
	}
	return history
}

// BuildTechniqueComfort projects the technique table into a name -> comfort
// lookup for growth scoring.
func BuildTechniqueComfort(techniques []models.Technique) TechniqueComfort {
	comfort := make(TechniqueComfort, len(techniques))
	for _, t := range techniques {
		comfort[Normalize(t.Name)] = t.Comfort
	}
	return comfort
}

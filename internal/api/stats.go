package api

import (
	"math"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"larder/internal/models"
)

type recipeTally struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Count     int     `json:"count"`
	AvgRating float64 `json:"avgRating"`
}

type techniqueStat struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Comfort      int    `json:"comfort"`
	Difficulty   int    `json:"difficulty"`
	RecipesCount int    `json:"recipesCount"`
	TimesUsed    int    `json:"timesUsed"`
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// Stats aggregates the cooking history into the dashboard payload:
// overview numbers, rating and cuisine breakdowns, most-cooked and
// highest-rated recipes, monthly activity, technique usage and the
// current daily cooking streak.
func (s *Server) Stats(c *gin.Context) {
	var logs []models.CookLog
	if err := s.db.Preload("Recipe").Order("cooked_on ASC").Find(&logs).Error; err != nil {
		internalError(c, err)
		return
	}

	var techniques []models.Technique
	if err := s.db.Preload("Recipes.Recipe.CookLogs").Find(&techniques).Error; err != nil {
		internalError(c, err)
		return
	}

	var totalRecipes int
	if err := s.db.Model(&models.Recipe{}).Count(&totalRecipes).Error; err != nil {
		internalError(c, err)
		return
	}

	now := time.Now()
	totalMeals := len(logs)

	totalPeopleServed := 0
	ratingSum := 0
	wouldRepeatCount := 0
	ratingDistribution := map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	cuisineCounts := map[string]int{}
	monthlyActivity := map[string]int{}
	byRecipe := map[string]*recipeTally{}

	for _, log := range logs {
		if log.ServedTo != nil {
			totalPeopleServed += *log.ServedTo
		}
		ratingSum += log.Rating
		if log.WouldRepeat {
			wouldRepeatCount++
		}
		ratingDistribution[log.Rating]++
		monthlyActivity[log.CookedOn.Format("2006-01")]++

		cuisine := "Unspecified"
		title := ""
		if log.Recipe != nil {
			if log.Recipe.Cuisine != "" {
				cuisine = log.Recipe.Cuisine
			}
			title = log.Recipe.Title
		}
		cuisineCounts[cuisine]++

		tally, ok := byRecipe[log.RecipeID]
		if !ok {
			tally = &recipeTally{ID: log.RecipeID, Title: title}
			byRecipe[log.RecipeID] = tally
		}
		tally.Count++
		tally.AvgRating += float64(log.Rating) // sum for now, averaged below
	}
	for _, tally := range byRecipe {
		tally.AvgRating = tally.AvgRating / float64(tally.Count)
	}

	avgRating := 0.0
	wouldRepeatPct := 0.0
	if totalMeals > 0 {
		avgRating = float64(ratingSum) / float64(totalMeals)
		wouldRepeatPct = float64(wouldRepeatCount) / float64(totalMeals) * 100
	}

	// Weekly average over the trailing 12 weeks.
	twelveWeeksAgo := now.Add(-12 * 7 * 24 * time.Hour)
	recentCount := 0
	last30Days := 0
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)
	for _, log := range logs {
		if !log.CookedOn.Before(twelveWeeksAgo) {
			recentCount++
		}
		if !log.CookedOn.Before(thirtyDaysAgo) {
			last30Days++
		}
	}
	avgMealsPerWeek := float64(recentCount) / 12

	type cuisineCount struct {
		Cuisine string `json:"cuisine"`
		Count   int    `json:"count"`
	}
	topCuisines := make([]cuisineCount, 0, len(cuisineCounts))
	for cuisine, count := range cuisineCounts {
		topCuisines = append(topCuisines, cuisineCount{Cuisine: cuisine, Count: count})
	}
	sort.SliceStable(topCuisines, func(i, j int) bool { return topCuisines[i].Count > topCuisines[j].Count })
	if len(topCuisines) > 8 {
		topCuisines = topCuisines[:8]
	}

	tallies := make([]recipeTally, 0, len(byRecipe))
	for _, tally := range byRecipe {
		tallies = append(tallies, *tally)
	}

	mostCooked := append([]recipeTally(nil), tallies...)
	sort.SliceStable(mostCooked, func(i, j int) bool { return mostCooked[i].Count > mostCooked[j].Count })
	if len(mostCooked) > 5 {
		mostCooked = mostCooked[:5]
	}

	// A single cook says little; require two before ranking by rating.
	highestRated := make([]recipeTally, 0, len(tallies))
	for _, tally := range tallies {
		if tally.Count >= 2 {
			highestRated = append(highestRated, tally)
		}
	}
	sort.SliceStable(highestRated, func(i, j int) bool { return highestRated[i].AvgRating > highestRated[j].AvgRating })
	if len(highestRated) > 5 {
		highestRated = highestRated[:5]
	}

	techniqueStats := make([]techniqueStat, 0, len(techniques))
	comfortDistribution := map[string]int{"untried": 0, "learning": 0, "comfortable": 0, "confident": 0}
	comfortNames := []string{"untried", "learning", "comfortable", "confident"}
	for _, tech := range techniques {
		if tech.Comfort >= 0 && tech.Comfort < len(comfortNames) {
			comfortDistribution[comfortNames[tech.Comfort]]++
		}
		timesUsed := 0
		for _, link := range tech.Recipes {
			if link.Recipe != nil {
				timesUsed += len(link.Recipe.CookLogs)
			}
		}
		techniqueStats = append(techniqueStats, techniqueStat{
			ID:           tech.ID,
			Name:         tech.Name,
			Comfort:      tech.Comfort,
			Difficulty:   tech.Difficulty,
			RecipesCount: len(tech.Recipes),
			TimesUsed:    timesUsed,
		})
	}
	sort.SliceStable(techniqueStats, func(i, j int) bool { return techniqueStats[i].TimesUsed > techniqueStats[j].TimesUsed })

	c.JSON(http.StatusOK, gin.H{
		"overview": gin.H{
			"totalMeals":        totalMeals,
			"totalRecipes":      totalRecipes,
			"totalPeopleServed": totalPeopleServed,
			"avgRating":         round1(avgRating),
			"wouldRepeatPct":    math.Round(wouldRepeatPct),
			"avgMealsPerWeek":   round1(avgMealsPerWeek),
			"last30DaysMeals":   last30Days,
			"currentStreak":     cookingStreak(logs, now),
		},
		"ratingDistribution":  ratingDistribution,
		"topCuisines":         topCuisines,
		"mostCooked":          mostCooked,
		"highestRated":        highestRated,
		"monthlyActivity":     monthlyActivity,
		"techniqueStats":      techniqueStats,
		"comfortDistribution": comfortDistribution,
	})
}

// cookingStreak counts consecutive calendar days with at least one cook,
// ending today or yesterday (a streak survives until a full day is missed).
func cookingStreak(logs []models.CookLog, now time.Time) int {
	seen := map[string]bool{}
	var days []string
	for _, log := range logs {
		day := log.CookedOn.Format("2006-01-02")
		if !seen[day] {
			seen[day] = true
			days = append(days, day)
		}
	}
	if len(days) == 0 {
		return 0
	}
	sort.Sort(sort.Reverse(sort.StringSlice(days)))

	today := now.Format("2006-01-02")
	yesterday := now.Add(-24 * time.Hour).Format("2006-01-02")
	if days[0] != today && days[0] != yesterday {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse("2006-01-02", days[i-1])
		curr, _ := time.Parse("2006-01-02", days[i])
		if prev.Sub(curr) == 24*time.Hour {
			streak++
		} else {
			break
		}
	}
	return streak
}

// Package classifier types recipes and estimates secondary fields from
// normalized title text alone. It is the keyword-table counterpart to the
// document-level extractors: everything here is cheap string sniffing against
// the pattern library, with a closed enum as output.
package classifier

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/patterns"
)

var titleServingsRe = regexp.MustCompile(`(?i)(?:para|for|serves)\s+(\d{1,2})\s*(?:personas|people|servings)?`)

// Classifier maps cleaned titles to categories and keyword-based estimates.
type Classifier struct {
	lib *patterns.Library
}

func New(lib *patterns.Library) *Classifier {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Classifier{lib: lib}
}

// Category returns the first category whose keyword table hits the title.
func (c *Classifier) Category(title string) models.Category {
	lower := strings.ToLower(title)
	for _, rule := range c.lib.CategoryKeywords {
		if patterns.ContainsAny(lower, rule.Keywords) {
			return categoryByName(rule.Name)
		}
	}
	return models.CategoryGeneral
}

// Estimate holds the secondary fields guessed for a candidate from its title.
// These are deliberately coarse; deep extraction replaces them when the user
// selects the candidate.
type Estimate struct {
	Difficulty       models.Difficulty
	CookTimeMin      int
	Servings         int
	IngredientsCount int
	Category         models.Category
}

// Estimate derives difficulty, time, servings and ingredient-count guesses
// purely from keyword matching against the cleaned title. No document access.
func (c *Classifier) Estimate(title string) Estimate {
	lower := strings.ToLower(title)

	est := Estimate{
		Difficulty:       models.DifficultyMedium,
		CookTimeMin:      30,
		Servings:         4,
		IngredientsCount: 8,
		Category:         c.Category(title),
	}

	quick := patterns.ContainsAny(lower, c.lib.QuickKeywords)
	easy := patterns.ContainsAny(lower, c.lib.EasyKeywords)

	switch {
	case patterns.ContainsAny(lower, c.lib.HardKeywords):
		est.Difficulty = models.DifficultyHard
		est.CookTimeMin = 60
		est.IngredientsCount = 12
	case easy || quick:
		est.Difficulty = models.DifficultyEasy
		est.CookTimeMin = 20
		est.IngredientsCount = 5
	case patterns.ContainsAny(lower, c.lib.SlowKeywords):
		est.CookTimeMin = 60
	}

	// A literal "en 10 minutos" style mention beats the keyword buckets.
	if m := regexp.MustCompile(`(?i)(?:en|in)\s+(\d{1,3})\s*min`).FindStringSubmatch(title); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil && v > 0 && v <= 480 {
			est.CookTimeMin = v
		}
	}

	if m := titleServingsRe.FindStringSubmatch(title); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil && v >= 1 && v <= 20 {
			est.Servings = v
		}
	} else if est.Category == models.CategoryDessert {
		// Cakes and tarts are baked for the table, not the plate.
		est.Servings = 8
	}

	return est
}

func categoryByName(name string) models.Category {
	switch name {
	case "chicken":
		return models.CategoryChicken
	case "meat":
		return models.CategoryMeat
	case "fish":
		return models.CategoryFish
	case "pasta":
		return models.CategoryPasta
	case "rice":
		return models.CategoryRice
	case "soup":
		return models.CategorySoup
	case "salad":
		return models.CategorySalad
	case "dessert":
		return models.CategoryDessert
	case "breakfast":
		return models.CategoryBreakfast
	case "drink":
		return models.CategoryDrink
	case "vegetarian":
		return models.CategoryVegetarian
	}
	return models.CategoryGeneral
}

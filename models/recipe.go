package models

import "strings"

// FieldResult is the uniform shape every field extractor returns. Matched
// reports whether a cascade rule produced the value; false means the field's
// documented default was substituted, which is not an error.
type FieldResult[T any] struct {
	Value     T    `json:"value"`
	Matched   bool `json:"matched"`
	RuleIndex int  `json:"rule_index"` // -1 when no rule matched
}

// Default wraps a fallback value in an unmatched result.
func Default[T any](v T) FieldResult[T] {
	return FieldResult[T]{Value: v, Matched: false, RuleIndex: -1}
}

// Matched wraps a value produced by the cascade rule at the given index.
func Matched[T any](v T, ruleIndex int) FieldResult[T] {
	return FieldResult[T]{Value: v, Matched: true, RuleIndex: ruleIndex}
}

// Difficulty is the estimated effort level of a recipe.
type Difficulty int

const (
	DifficultyEasy Difficulty = iota
	DifficultyMedium
	DifficultyHard
)

func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return "medium"
}

// Category is a closed set of recipe categories derived from title keywords.
type Category int

const (
	CategoryGeneral Category = iota
	CategoryChicken
	CategoryMeat
	CategoryFish
	CategoryPasta
	CategoryRice
	CategorySoup
	CategorySalad
	CategoryDessert
	CategoryBreakfast
	CategoryDrink
	CategoryVegetarian
)

func (c Category) String() string {
	switch c {
	case CategoryChicken:
		return "chicken"
	case CategoryMeat:
		return "meat"
	case CategoryFish:
		return "fish"
	case CategoryPasta:
		return "pasta"
	case CategoryRice:
		return "rice"
	case CategorySoup:
		return "soup"
	case CategorySalad:
		return "salad"
	case CategoryDessert:
		return "dessert"
	case CategoryBreakfast:
		return "breakfast"
	case CategoryDrink:
		return "drink"
	case CategoryVegetarian:
		return "vegetarian"
	}
	return "general"
}

// RecipePreview is the confidence-scored, best-effort record produced by a
// single-recipe extraction. It is immutable once returned; the engine keeps
// no reference to it.
type RecipePreview struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Ingredients      []string `json:"ingredients"` // names only, capped at 6
	IngredientsCount int      `json:"ingredients_count"`
	PrepTimeMin      int      `json:"prep_time_min"`
	CookTimeMin      int      `json:"cook_time_min"`
	TotalTimeMin     int      `json:"total_time_min"` // always PrepTimeMin + CookTimeMin
	Servings         int      `json:"servings"`
	ImageURL         string   `json:"image_url,omitempty"`
	SourceURL        string   `json:"source_url"`
	RecipeType       Category `json:"recipe_type"`
	Language         string   `json:"language,omitempty"` // "es", "en" or "unknown"
	Confidence       int      `json:"confidence"`         // 0..100
}

// RecipeCandidate is a lazy stub for one of several recipes detected on a
// single page. IsExtracted is always false: deep extraction is deferred until
// the caller selects a candidate and re-runs the preview builder scoped to it.
type RecipeCandidate struct {
	ID               string     `json:"id"`
	Title            string     `json:"title"`
	Description      string     `json:"description"`
	ImageURL         string     `json:"image_url,omitempty"`
	Difficulty       Difficulty `json:"difficulty"`
	CookTimeMin      int        `json:"cook_time_min"`
	Servings         int        `json:"servings"`
	IngredientsCount int        `json:"ingredients_count"`
	Category         Category   `json:"category"`
	SourceURL        string     `json:"source_url"`
	SectionAnchor    string     `json:"section_anchor,omitempty"` // heading text used for targeted re-extraction
	IsExtracted      bool       `json:"is_extracted"`
}

// NormalizeTitle produces the case-folded, whitespace-collapsed form used for
// candidate deduplication.
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(strings.ToLower(title)), " ")
}

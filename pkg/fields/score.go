package fields

import "github.com/recetly/recipe-parser/models"

// ScoreWeights are the additive points of the confidence heuristic. The
// shape is deliberate: explainable, additive, bounded, so a user-facing
// "confidence: 78%" is intelligible and reproducible.
type ScoreWeights struct {
	TitleMatched    int
	IngredientCount int
	PrepTime        int
	CookTime        int

	IngredientMin, IngredientMax int // inclusive range earning points
	PrepTimeMax                  int // exclusive-zero, inclusive-max range
	CookTimeMax                  int
}

func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		TitleMatched:    30,
		IngredientCount: 25,
		PrepTime:        20,
		CookTime:        25,
		IngredientMin:   4,
		IngredientMax:   19,
		PrepTimeMax:     240,
		CookTimeMax:     480,
	}
}

// Score combines field extraction outcomes into a 0-100 confidence value.
// Every component requires an actual cascade match: substituted defaults earn
// nothing, so an empty page scores 0 rather than the sum of its defaults.
func Score(w ScoreWeights, title models.FieldResult[string], ingredientsCount, prepTime, cookTime models.FieldResult[int]) int {
	score := 0
	if title.Matched {
		score += w.TitleMatched
	}
	if ingredientsCount.Matched && ingredientsCount.Value >= w.IngredientMin && ingredientsCount.Value <= w.IngredientMax {
		score += w.IngredientCount
	}
	if prepTime.Matched && prepTime.Value > 0 && prepTime.Value <= w.PrepTimeMax {
		score += w.PrepTime
	}
	if cookTime.Matched && cookTime.Value > 0 && cookTime.Value <= w.CookTimeMax {
		score += w.CookTime
	}
	if score > 100 {
		score = 100
	}
	return score
}

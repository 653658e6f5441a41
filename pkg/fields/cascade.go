package fields

import "github.com/recetly/recipe-parser/models"

// Rule is one entry in a field's detection cascade. Fn returns the candidate
// value and whether the rule fired at all; plausibility is checked by the
// cascade, so an implausible match falls through to the next rule.
type Rule[T any] struct {
	Name string
	Fn   func(d *Doc) (T, bool)
}

// Cascade is a field extractor expressed as data: an ordered rule list, a
// plausibility bound, and a default. Eval is the only control flow.
type Cascade[T any] struct {
	Field string
	Rules []Rule[T]
	// Valid bounds a matched value; nil accepts everything.
	Valid func(T) bool
	// Default substitutes when no rule yields a plausible value. DefaultFn,
	// when set, computes a document-dependent fallback instead.
	Default   T
	DefaultFn func(d *Doc) T
}

// Eval runs the cascade top to bottom and returns the first plausible match,
// or the default wrapped in an unmatched result.
func (c Cascade[T]) Eval(d *Doc) models.FieldResult[T] {
	for i, rule := range c.Rules {
		v, ok := rule.Fn(d)
		if !ok {
			continue
		}
		if c.Valid != nil && !c.Valid(v) {
			continue
		}
		return models.Matched(v, i)
	}
	if c.DefaultFn != nil {
		return models.Default(c.DefaultFn(d))
	}
	return models.Default(c.Default)
}

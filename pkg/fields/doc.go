// Package fields implements the per-field extraction cascades. Every field is
// an ordered rule list fed to one shared first-match-wins evaluator; a rule
// that matches an implausible value falls through to the next rule, and a
// field with no match gets its documented default. Defaults are never errors.
package fields

import (
	"encoding/json"
	"strconv"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/recetly/recipe-parser/models"
)

// Doc wraps a RawDocument with its parsed DOM and any Schema.org Recipe found
// in JSON-LD, so the cascade rules share parsing work. It is read-only after
// construction.
type Doc struct {
	Raw *models.RawDocument
	dom *goquery.Document
	ld  *SchemaRecipe

	textOnce  sync.Once
	textLower string
}

// SchemaRecipe is the subset of a Schema.org Recipe object the cascades use.
type SchemaRecipe struct {
	Name        string
	Description string
	Image       string
	Ingredients []string
	PrepTime    string // ISO-8601 duration
	CookTime    string
	TotalTime   string
	Yield       string
}

// NewDoc parses the document HTML. Parse failures degrade to an empty DOM
// rather than erroring; the cascades then fall through to their defaults.
func NewDoc(raw *models.RawDocument) *Doc {
	d := &Doc{Raw: raw}

	dom, err := goquery.NewDocumentFromReader(strings.NewReader(raw.HTML))
	if err != nil {
		dom, _ = goquery.NewDocumentFromReader(strings.NewReader("<html></html>"))
	}
	d.dom = dom
	d.ld = findSchemaRecipe(dom)
	return d
}

// DOM exposes the parsed document for cascade rules.
func (d *Doc) DOM() *goquery.Document { return d.dom }

// Schema returns the first Schema.org Recipe found in the document, or nil.
func (d *Doc) Schema() *SchemaRecipe { return d.ld }

// TextLower returns the lowercase visible body text, computed once.
func (d *Doc) TextLower() string {
	d.textOnce.Do(func() {
		body := d.dom.Find("body")
		text := body.Text()
		if strings.TrimSpace(text) == "" {
			text = d.dom.Text()
		}
		d.textLower = strings.ToLower(text)
	})
	return d.textLower
}

// findSchemaRecipe scans every JSON-LD script for an object whose @type is
// Recipe, including @graph wrappers and top-level arrays.
func findSchemaRecipe(dom *goquery.Document) *SchemaRecipe {
	var found *SchemaRecipe
	dom.Find("script[type='application/ld+json']").EachWithBreak(func(i int, s *goquery.Selection) bool {
		var payload interface{}
		if err := json.Unmarshal([]byte(s.Text()), &payload); err != nil {
			return true // malformed block, keep scanning
		}
		if r := recipeFromValue(payload); r != nil {
			found = r
			return false
		}
		return true
	})
	return found
}

func recipeFromValue(v interface{}) *SchemaRecipe {
	switch val := v.(type) {
	case []interface{}:
		for _, item := range val {
			if r := recipeFromValue(item); r != nil {
				return r
			}
		}
	case map[string]interface{}:
		if isRecipeType(val["@type"]) {
			return parseSchemaRecipe(val)
		}
		if graph, ok := val["@graph"]; ok {
			return recipeFromValue(graph)
		}
	}
	return nil
}

func isRecipeType(v interface{}) bool {
	switch t := v.(type) {
	case string:
		return strings.EqualFold(t, "Recipe")
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && strings.EqualFold(s, "Recipe") {
				return true
			}
		}
	}
	return false
}

func parseSchemaRecipe(obj map[string]interface{}) *SchemaRecipe {
	r := &SchemaRecipe{
		Name:        asString(obj["name"]),
		Description: asString(obj["description"]),
		Image:       imageURL(obj["image"]),
		PrepTime:    asString(obj["prepTime"]),
		CookTime:    asString(obj["cookTime"]),
		TotalTime:   asString(obj["totalTime"]),
		Yield:       yieldString(obj["recipeYield"]),
	}
	if ing, ok := obj["recipeIngredient"].([]interface{}); ok {
		for _, item := range ing {
			if s := asString(item); s != "" {
				r.Ingredients = append(r.Ingredients, s)
			}
		}
	}
	return r
}

// asString tolerates the string-or-object looseness of real-world JSON-LD.
func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return trimFloat(s)
	case map[string]interface{}:
		if txt, ok := s["@value"].(string); ok {
			return strings.TrimSpace(txt)
		}
	}
	return ""
}

// imageURL accepts a string, an ImageObject, or an array of either.
func imageURL(v interface{}) string {
	switch img := v.(type) {
	case string:
		return strings.TrimSpace(img)
	case map[string]interface{}:
		return asString(img["url"])
	case []interface{}:
		for _, item := range img {
			if u := imageURL(item); u != "" {
				return u
			}
		}
	}
	return ""
}

// yieldString accepts "6", 6, "6 servings", or ["6", "6 servings"].
func yieldString(v interface{}) string {
	switch y := v.(type) {
	case string:
		return strings.TrimSpace(y)
	case float64:
		return trimFloat(y)
	case []interface{}:
		for _, item := range y {
			if s := yieldString(item); s != "" {
				return s
			}
		}
	}
	return ""
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

package fields

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/patterns"
	"github.com/recetly/recipe-parser/pkg/titles"
)

// Bounds collects the plausibility thresholds and defaults of the cascades.
// The values are hand-tuned heuristics, kept as data so they can be
// recalibrated without touching extractor logic.
type Bounds struct {
	DescMin, DescMax               int
	IngredientsMin, IngredientsMax int
	TimeMax                        int // minutes ceiling for any time field
	ServingsMin, ServingsMax       int
	ImageMinDimension              int

	DefaultPrep        int
	DefaultCook        int
	DefaultServings    int
	DefaultIngredients int
	DefaultTitle       string
	DefaultDescription string
}

func DefaultBounds() Bounds {
	return Bounds{
		DescMin:            20,
		DescMax:            200,
		IngredientsMin:     3,
		IngredientsMax:     30,
		TimeMax:            480,
		ServingsMin:        1,
		ServingsMax:        20,
		ImageMinDimension:  200,
		DefaultPrep:        15,
		DefaultCook:        30,
		DefaultServings:    4,
		DefaultIngredients: 6,
		DefaultTitle:       "Untitled recipe",
		DefaultDescription: "A recipe extracted from the source page.",
	}
}

var (
	firstIntRe   = regexp.MustCompile(`\d{1,3}`)
	servingsRe   = regexp.MustCompile(`(?:serves|servings?|porciones|raciones|comensales)\s*:?\s*(\d{1,2})\b`)
	servingsRevRe = regexp.MustCompile(`(\d{1,2})\s*(?:porciones|raciones|servings|personas|comensales)\b`)
	forPeopleRe  = regexp.MustCompile(`para\s+(\d{1,2})\s+personas?\b`)
	quantityLeadRe = regexp.MustCompile(`^[\s\d¼½¾./,+-]+`)
)

// Extractor runs the field cascades against a Doc. It is stateless between
// calls and safe for concurrent use.
type Extractor struct {
	lib     *patterns.Library
	cleaner *titles.Cleaner
	bounds  Bounds

	prepTimes *timeMatcher
	cookTimes *timeMatcher

	title       Cascade[string]
	description Cascade[string]
	ingredients Cascade[IngredientsResult]
	prepTime    Cascade[int]
	cookTime    Cascade[int]
	servings    Cascade[int]
	image       Cascade[string]
}

// IngredientsResult carries both the visible ingredient names (capped at six)
// and the full count.
type IngredientsResult struct {
	Names []string
	Count int
}

// New builds an Extractor over a pattern library. A nil cleaner gets one built
// from the same library.
func New(lib *patterns.Library, cleaner *titles.Cleaner, bounds Bounds) *Extractor {
	if lib == nil {
		lib = patterns.Default()
	}
	if cleaner == nil {
		cleaner = titles.NewCleaner(lib)
	}
	e := &Extractor{
		lib:     lib,
		cleaner: cleaner,
		bounds:  bounds,
		prepTimes: newTimeMatcher([]string{
			`tiempo de preparaci[oó]n`, `preparaci[oó]n`, `preparacion`,
			`prep(?:aration)?(?:\s+time)?`, `prep\b`,
		}),
		cookTimes: newTimeMatcher([]string{
			`tiempo de cocci[oó]n`, `cocci[oó]n`, `coccion`, `horno`, `hornear`,
			`cook(?:ing)?(?:\s+time)?`, `bak(?:e|ing)`,
		}),
	}
	e.buildCascades()
	return e
}

func (e *Extractor) buildCascades() {
	e.title = Cascade[string]{
		Field: "title",
		Rules: []Rule[string]{
			{Name: "structured_data", Fn: func(d *Doc) (string, bool) {
				if d.Schema() == nil {
					return "", false
				}
				return e.cleanTitle(d.Schema().Name)
			}},
			{Name: "social_meta", Fn: func(d *Doc) (string, bool) {
				for _, sel := range []string{
					"meta[property='og:title']", "meta[name='twitter:title']", "meta[name='title']",
				} {
					if content, ok := metaContent(d, sel); ok {
						if t, valid := e.cleanTitle(content); valid {
							return t, true
						}
					}
				}
				return "", false
			}},
			{Name: "first_heading", Fn: func(d *Doc) (string, bool) {
				var title string
				d.DOM().Find("h1, h2").EachWithBreak(func(i int, s *goquery.Selection) bool {
					if t, valid := e.cleanTitle(s.Text()); valid {
						title = t
						return false
					}
					return true
				})
				return title, title != ""
			}},
			{Name: "page_title", Fn: func(d *Doc) (string, bool) {
				if t, valid := e.cleanTitle(d.DOM().Find("title").First().Text()); valid {
					return t, true
				}
				return e.cleanTitle(d.Raw.PageTitle)
			}},
		},
		Default: e.bounds.DefaultTitle,
	}

	e.description = Cascade[string]{
		Field: "description",
		Rules: []Rule[string]{
			{Name: "meta_description", Fn: func(d *Doc) (string, bool) {
				for _, sel := range []string{
					"meta[name='description']", "meta[property='og:description']", "meta[name='twitter:description']",
				} {
					if content, ok := metaContent(d, sel); ok {
						return e.clampDescription(content)
					}
				}
				return "", false
			}},
			{Name: "first_paragraph", Fn: func(d *Doc) (string, bool) {
				var desc string
				d.DOM().Find("p").EachWithBreak(func(i int, s *goquery.Selection) bool {
					if t, ok := e.clampDescription(s.Text()); ok {
						desc = t
						return false
					}
					return true
				})
				return desc, desc != ""
			}},
		},
		Valid:   func(s string) bool { return len([]rune(s)) >= e.bounds.DescMin },
		Default: e.bounds.DefaultDescription,
	}

	e.ingredients = Cascade[IngredientsResult]{
		Field: "ingredients",
		Rules: []Rule[IngredientsResult]{
			{Name: "structured_data", Fn: func(d *Doc) (IngredientsResult, bool) {
				if d.Schema() == nil || len(d.Schema().Ingredients) == 0 {
					return IngredientsResult{}, false
				}
				return e.ingredientsFromLines(d.Schema().Ingredients), true
			}},
			{Name: "ingredient_containers", Fn: func(d *Doc) (IngredientsResult, bool) {
				for _, sel := range e.lib.IngredientContainers {
					lines := selectionLines(d.DOM().Find(sel))
					if len(lines) >= e.bounds.IngredientsMin {
						return e.ingredientsFromLines(lines), true
					}
				}
				return IngredientsResult{}, false
			}},
			{Name: "generic_list", Fn: func(d *Doc) (IngredientsResult, bool) {
				var result IngredientsResult
				found := false
				d.DOM().Find("ul, ol").EachWithBreak(func(i int, list *goquery.Selection) bool {
					lines := selectionLines(list.Find("li"))
					if len(lines) < e.bounds.IngredientsMin || len(lines) > e.bounds.IngredientsMax {
						return true
					}
					// Accept a generic list only when most items carry a
					// quantity/unit signature.
					hits := 0
					for _, line := range lines {
						if e.looksLikeIngredient(line) {
							hits++
						}
					}
					if hits*2 <= len(lines) {
						return true
					}
					result = e.ingredientsFromLines(lines)
					found = true
					return false
				})
				return result, found
			}},
		},
		Valid: func(r IngredientsResult) bool {
			return r.Count >= e.bounds.IngredientsMin && r.Count <= e.bounds.IngredientsMax
		},
		DefaultFn: func(d *Doc) IngredientsResult {
			return IngredientsResult{Count: e.estimateIngredientCount(d)}
		},
	}

	validTime := func(v int) bool { return v >= 0 && v <= e.bounds.TimeMax }

	e.prepTime = Cascade[int]{
		Field:   "prep_time",
		Rules:   e.timeRules(func(s *SchemaRecipe) string { return s.PrepTime }, "prepTime", e.prepTimes),
		Valid:   validTime,
		Default: e.bounds.DefaultPrep,
	}
	e.cookTime = Cascade[int]{
		Field:   "cook_time",
		Rules:   e.timeRules(func(s *SchemaRecipe) string { return s.CookTime }, "cookTime", e.cookTimes),
		Valid:   validTime,
		Default: e.bounds.DefaultCook,
	}

	e.servings = Cascade[int]{
		Field: "servings",
		Rules: []Rule[int]{
			{Name: "structured_data", Fn: func(d *Doc) (int, bool) {
				if d.Schema() == nil {
					return 0, false
				}
				return firstInt(d.Schema().Yield)
			}},
			{Name: "yield_markup", Fn: func(d *Doc) (int, bool) {
				sel := d.DOM().Find("[itemprop='recipeYield'], [itemprop='yield']").First()
				if sel.Length() == 0 {
					return 0, false
				}
				if content, ok := sel.Attr("content"); ok {
					if v, found := firstInt(content); found {
						return v, true
					}
				}
				return firstInt(sel.Text())
			}},
			{Name: "labeled_text", Fn: func(d *Doc) (int, bool) {
				text := d.TextLower()
				for _, re := range []*regexp.Regexp{servingsRe, forPeopleRe, servingsRevRe} {
					if m := re.FindStringSubmatch(text); len(m) == 2 {
						if v, err := strconv.Atoi(m[1]); err == nil {
							return v, true
						}
					}
				}
				return 0, false
			}},
		},
		Valid: func(v int) bool {
			return v >= e.bounds.ServingsMin && v <= e.bounds.ServingsMax
		},
		Default: e.bounds.DefaultServings,
	}

	e.image = Cascade[string]{
		Field: "image",
		Rules: []Rule[string]{
			{Name: "structured_data", Fn: func(d *Doc) (string, bool) {
				if d.Schema() == nil {
					return "", false
				}
				return e.resolveImage(d, d.Schema().Image)
			}},
			{Name: "social_meta", Fn: func(d *Doc) (string, bool) {
				for _, sel := range []string{"meta[property='og:image']", "meta[name='twitter:image']"} {
					if content, ok := metaContent(d, sel); ok {
						if u, valid := e.resolveImage(d, content); valid {
							return u, true
						}
					}
				}
				return "", false
			}},
			{Name: "lead_image", Fn: func(d *Doc) (string, bool) {
				return e.resolveImage(d, d.Raw.LeadImageURL)
			}},
			{Name: "recipe_classes", Fn: func(d *Doc) (string, bool) {
				for _, sel := range e.lib.ImageSelectors {
					if u, ok := e.firstImage(d, d.DOM().Find(sel)); ok {
						return u, true
					}
				}
				return "", false
			}},
			{Name: "large_image", Fn: func(d *Doc) (string, bool) {
				var found string
				d.DOM().Find("img").EachWithBreak(func(i int, img *goquery.Selection) bool {
					if !dimensionAtLeast(img, e.bounds.ImageMinDimension) {
						return true
					}
					if u, ok := e.resolveImage(d, imgSrc(img)); ok {
						found = u
						return false
					}
					return true
				})
				return found, found != ""
			}},
			{Name: "any_image", Fn: func(d *Doc) (string, bool) {
				return e.firstImage(d, d.DOM().Find("img"))
			}},
		},
	}
}

// timeRules builds the shared cascade shape of the two time fields:
// structured ISO duration, meta tag, labeled text, proximity pattern.
func (e *Extractor) timeRules(schemaField func(*SchemaRecipe) string, itemprop string, matcher *timeMatcher) []Rule[int] {
	return []Rule[int]{
		{Name: "structured_data", Fn: func(d *Doc) (int, bool) {
			if d.Schema() == nil {
				return 0, false
			}
			return ParseISODuration(schemaField(d.Schema()))
		}},
		{Name: "time_markup", Fn: func(d *Doc) (int, bool) {
			sel := d.DOM().Find("[itemprop='" + itemprop + "']").First()
			if sel.Length() == 0 {
				return 0, false
			}
			for _, attr := range []string{"content", "datetime"} {
				if v, ok := sel.Attr(attr); ok {
					if mins, parsed := ParseISODuration(v); parsed {
						return mins, true
					}
				}
			}
			return matcher.Labeled(strings.ToLower(sel.Text()))
		}},
		{Name: "labeled_text", Fn: func(d *Doc) (int, bool) {
			return matcher.Labeled(d.TextLower())
		}},
		{Name: "proximity", Fn: func(d *Doc) (int, bool) {
			return matcher.Proximity(d.TextLower())
		}},
	}
}

// Title runs the title cascade.
func (e *Extractor) Title(d *Doc) models.FieldResult[string] { return e.title.Eval(d) }

// Description runs the description cascade.
func (e *Extractor) Description(d *Doc) models.FieldResult[string] { return e.description.Eval(d) }

// Ingredients runs the ingredients cascade.
func (e *Extractor) Ingredients(d *Doc) models.FieldResult[IngredientsResult] {
	return e.ingredients.Eval(d)
}

// PrepTime runs the preparation-time cascade.
func (e *Extractor) PrepTime(d *Doc) models.FieldResult[int] { return e.prepTime.Eval(d) }

// CookTime runs the cooking-time cascade.
func (e *Extractor) CookTime(d *Doc) models.FieldResult[int] { return e.cookTime.Eval(d) }

// Servings runs the servings cascade.
func (e *Extractor) Servings(d *Doc) models.FieldResult[int] { return e.servings.Eval(d) }

// Image runs the image cascade. An empty unmatched value means the field is
// omitted.
func (e *Extractor) Image(d *Doc) models.FieldResult[string] { return e.image.Eval(d) }

// Bounds returns the active thresholds.
func (e *Extractor) Bounds() Bounds { return e.bounds }

func (e *Extractor) cleanTitle(raw string) (string, bool) {
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	t := e.cleaner.Clean(raw)
	if !e.cleaner.IsValid(t) {
		return "", false
	}
	return t, true
}

func (e *Extractor) clampDescription(raw string) (string, bool) {
	t := strings.Join(strings.Fields(raw), " ")
	r := []rune(t)
	if len(r) < e.bounds.DescMin {
		return "", false
	}
	if len(r) > e.bounds.DescMax {
		t = strings.TrimSpace(string(r[:e.bounds.DescMax-1])) + "…"
	}
	return t, true
}

// ingredientsFromLines keeps the full count and the first six cleaned names.
func (e *Extractor) ingredientsFromLines(lines []string) IngredientsResult {
	result := IngredientsResult{Count: len(lines)}
	for _, line := range lines {
		if len(result.Names) == 6 {
			break
		}
		if name := ingredientName(line); name != "" {
			result.Names = append(result.Names, name)
		}
	}
	return result
}

// looksLikeIngredient reports whether a list item carries a quantity or unit
// signature.
func (e *Extractor) looksLikeIngredient(line string) bool {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return false
	}
	if strings.TrimSpace(quantityLeadRe.FindString(lower)) != "" {
		return true
	}
	return patterns.ContainsAny(lower, e.lib.UnitWords)
}

// ingredientName strips the leading quantity and unit from an ingredient line
// ("200 g de harina" -> "harina"), keeping just the name.
func ingredientName(line string) string {
	s := strings.Join(strings.Fields(line), " ")
	s = strings.TrimSpace(quantityLeadRe.ReplaceAllString(s, ""))

	fields := strings.Fields(s)
	if len(fields) > 1 {
		first := strings.ToLower(strings.TrimRight(fields[0], ".,"))
		for _, unit := range unitPrefixes {
			if first == unit {
				fields = fields[1:]
				// "de harina" / "of flour"
				if len(fields) > 1 && (strings.EqualFold(fields[0], "de") || strings.EqualFold(fields[0], "of")) {
					fields = fields[1:]
				}
				break
			}
		}
	}
	return strings.Join(fields, " ")
}

// unitPrefixes are the unit words stripped from the front of an ingredient
// line when isolating the name.
var unitPrefixes = []string{
	"g", "gr", "gramos", "gram", "grams", "kg", "ml", "l", "litro", "litros",
	"taza", "tazas", "cup", "cups", "cucharada", "cucharadas", "cucharadita",
	"cucharaditas", "tablespoon", "tablespoons", "tbsp", "teaspoon",
	"teaspoons", "tsp", "pizca", "pinch", "diente", "dientes", "clove",
	"cloves", "unidad", "unidades", "lata", "latas", "can", "oz", "lb",
}

// estimateIngredientCount guesses a count from unit-word frequency in the
// body text when no list matched.
func (e *Extractor) estimateIngredientCount(d *Doc) int {
	text := d.TextLower()
	occurrences := 0
	for _, unit := range e.lib.UnitWords {
		occurrences += strings.Count(text, unit)
	}
	if occurrences < e.bounds.IngredientsMin {
		return e.bounds.DefaultIngredients
	}
	if occurrences > e.bounds.IngredientsMax {
		return e.bounds.IngredientsMax
	}
	return occurrences
}

// resolveImage applies the denylist and resolves the URL against the source.
func (e *Extractor) resolveImage(d *Doc, src string) (string, bool) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", false
	}
	// Word-boundary matching keeps "ad" from firing inside "uploads".
	if patterns.ContainsAny(strings.ToLower(src), e.lib.ImageDenylist) {
		return "", false
	}
	base, err := url.Parse(d.Raw.SourceURL)
	if err != nil {
		return src, true
	}
	ref, err := url.Parse(src)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	return resolved.String(), true
}

func (e *Extractor) firstImage(d *Doc, sel *goquery.Selection) (string, bool) {
	var found string
	sel.EachWithBreak(func(i int, img *goquery.Selection) bool {
		if u, ok := e.resolveImage(d, imgSrc(img)); ok {
			found = u
			return false
		}
		return true
	})
	return found, found != ""
}

func metaContent(d *Doc, selector string) (string, bool) {
	content, ok := d.DOM().Find(selector).First().Attr("content")
	content = strings.TrimSpace(content)
	return content, ok && content != ""
}

func selectionLines(sel *goquery.Selection) []string {
	var lines []string
	sel.Each(func(i int, s *goquery.Selection) {
		if t := strings.Join(strings.Fields(s.Text()), " "); t != "" {
			lines = append(lines, t)
		}
	})
	return lines
}

func imgSrc(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src"} {
		if v, ok := img.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	if srcset, ok := img.Attr("srcset"); ok {
		if first := strings.Fields(strings.Split(srcset, ",")[0]); len(first) > 0 {
			return first[0]
		}
	}
	return ""
}

func dimensionAtLeast(img *goquery.Selection, min int) bool {
	for _, attr := range []string{"width", "height"} {
		if v, ok := img.Attr(attr); ok {
			if n, err := strconv.Atoi(strings.TrimSuffix(strings.TrimSpace(v), "px")); err == nil && n >= min {
				return true
			}
		}
	}
	return false
}

// firstInt returns the first integer embedded in a string, e.g. "6 servings".
func firstInt(s string) (int, bool) {
	m := firstIntRe.FindString(s)
	if m == "" {
		return 0, false
	}
	v, err := strconv.Atoi(m)
	return v, err == nil
}

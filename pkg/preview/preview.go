// Package preview orchestrates the field cascades, classifier, and confidence
// scorer into a single best-effort RecipePreview.
package preview

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/classifier"
	"github.com/recetly/recipe-parser/pkg/fields"
	"github.com/recetly/recipe-parser/pkg/lang"
	"github.com/recetly/recipe-parser/pkg/patterns"
)

// Builder turns raw documents into recipe previews. Stateless and safe for
// concurrent use.
type Builder struct {
	extractor  *fields.Extractor
	classifier *classifier.Classifier
	weights    fields.ScoreWeights
	logger     *slog.Logger
}

func NewBuilder(lib *patterns.Library, logger *slog.Logger) *Builder {
	if lib == nil {
		lib = patterns.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{
		extractor:  fields.New(lib, nil, fields.DefaultBounds()),
		classifier: classifier.New(lib),
		weights:    fields.DefaultScoreWeights(),
		logger:     logger,
	}
}

// Build extracts a confidence-scored preview from a raw document. Every field
// degrades to its documented default; Build never fails.
func (b *Builder) Build(raw *models.RawDocument) *models.RecipePreview {
	doc := fields.NewDoc(raw)
	return b.build(doc, raw)
}

func (b *Builder) build(doc *fields.Doc, raw *models.RawDocument) *models.RecipePreview {
	title := b.extractor.Title(doc)
	description := b.extractor.Description(doc)
	ingredients := b.extractor.Ingredients(doc)
	prep := b.extractor.PrepTime(doc)
	cook := b.extractor.CookTime(doc)
	servings := b.extractor.Servings(doc)
	image := b.extractor.Image(doc)

	b.logMisses(raw.SourceURL, map[string]bool{
		"title":       title.Matched,
		"description": description.Matched,
		"ingredients": ingredients.Matched,
		"prep_time":   prep.Matched,
		"cook_time":   cook.Matched,
		"servings":    servings.Matched,
		"image":       image.Matched,
	})

	p := &models.RecipePreview{
		Title:            title.Value,
		Description:      description.Value,
		Ingredients:      ingredients.Value.Names,
		IngredientsCount: ingredients.Value.Count,
		PrepTimeMin:      prep.Value,
		CookTimeMin:      cook.Value,
		TotalTimeMin:     prep.Value + cook.Value,
		Servings:         servings.Value,
		ImageURL:         image.Value,
		SourceURL:        raw.SourceURL,
		RecipeType:       b.classifier.Category(title.Value),
		Language:         lang.Detect(doc.TextLower()),
		Confidence: fields.Score(b.weights, title,
			models.FieldResult[int]{Value: ingredients.Value.Count, Matched: ingredients.Matched, RuleIndex: ingredients.RuleIndex},
			prep, cook),
	}
	return p
}

// BuildForCandidate re-runs extraction scoped to a candidate's document
// section: from its anchor heading to the next heading of equal or higher
// level. If the anchor cannot be relocated, the whole document is used and
// the candidate's title wins over the default.
func (b *Builder) BuildForCandidate(raw *models.RawDocument, cand models.RecipeCandidate) *models.RecipePreview {
	scoped := raw
	if section := sliceSection(raw.HTML, cand.SectionAnchor); section != "" {
		copied := *raw
		copied.HTML = section
		scoped = &copied
	}

	p := b.Build(scoped)
	if p.Title == b.extractor.Bounds().DefaultTitle && cand.Title != "" {
		p.Title = cand.Title
		p.RecipeType = b.classifier.Category(cand.Title)
	}
	return p
}

// sliceSection returns the HTML from the heading matching anchor up to the
// next sibling heading of equal-or-higher level, or "" when not found.
func sliceSection(html, anchor string) string {
	anchor = models.NormalizeTitle(anchor)
	if anchor == "" {
		return ""
	}
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}

	var section string
	dom.Find("h1, h2, h3, h4").EachWithBreak(func(i int, h *goquery.Selection) bool {
		text := models.NormalizeTitle(h.Text())
		if text == "" || !strings.Contains(text, anchor) && !strings.Contains(anchor, text) {
			return true
		}

		level := goquery.NodeName(h)
		stop := stopSelector(level)

		var sb strings.Builder
		if outer, err := goquery.OuterHtml(h); err == nil {
			sb.WriteString(outer)
		}
		h.NextUntil(stop).Each(func(j int, sib *goquery.Selection) {
			if outer, err := goquery.OuterHtml(sib); err == nil {
				sb.WriteString(outer)
			}
		})
		section = sb.String()
		return false
	})
	return section
}

// stopSelector lists the heading tags that end a section started by level.
func stopSelector(level string) string {
	switch level {
	case "h1":
		return "h1"
	case "h2":
		return "h1, h2"
	case "h3":
		return "h1, h2, h3"
	}
	return "h1, h2, h3, h4"
}

func (b *Builder) logMisses(url string, matched map[string]bool) {
	for field, ok := range matched {
		if !ok {
			b.logger.Debug("field default substituted", "url", url, "field", field)
		}
	}
}

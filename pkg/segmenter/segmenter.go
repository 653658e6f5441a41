// Package segmenter detects documents that embed several distinct recipes
// (roundup pages) and produces a deduplicated, capped list of lazy candidate
// stubs. Deep extraction is deferred until the caller selects one candidate.
package segmenter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/recetly/recipe-parser/models"
	"github.com/recetly/recipe-parser/pkg/classifier"
	"github.com/recetly/recipe-parser/pkg/patterns"
	"github.com/recetly/recipe-parser/pkg/titles"
)

// MaxCandidates caps the candidate list; the latest-found excess is dropped.
const MaxCandidates = 10

// minCandidates is the threshold under which the fallback sequence runs.
const minCandidates = 2

// Segmenter scans a document for evidence of multiple recipes.
type Segmenter struct {
	lib        *patterns.Library
	cleaner    *titles.Cleaner
	classifier *classifier.Classifier
	logger     *slog.Logger
}

func New(lib *patterns.Library, logger *slog.Logger) *Segmenter {
	if lib == nil {
		lib = patterns.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Segmenter{
		lib:        lib,
		cleaner:    titles.NewCleaner(lib),
		classifier: classifier.New(lib),
		logger:     logger,
	}
}

// Segment runs the detection battery and, when it finds fewer than two valid
// candidates, the fallback sequence: literal "recipe" anchor scan, ingredient
// container counting, and finally the whole document as a single recipe.
func (s *Segmenter) Segment(raw *models.RawDocument) []models.RecipeCandidate {
	dom, err := goquery.NewDocumentFromReader(strings.NewReader(raw.HTML))
	if err != nil {
		s.logger.Warn("segmenter could not parse html", "url", raw.SourceURL, "error", err)
		return s.wholeDocumentCandidate(nil, raw)
	}

	acc := newAccumulator(raw.SourceURL)

	for _, rule := range s.lib.SegmentRules {
		// Broad-net rules (no food keyword required) only run while the
		// focused rules have not produced a usable list yet.
		if !rule.RequireFood && len(acc.found) >= minCandidates {
			continue
		}
		dom.Find(rule.Selector).EachWithBreak(func(i int, sel *goquery.Selection) bool {
			s.consider(acc, sel, rule.RequireFood)
			return !acc.full()
		})
		if acc.full() {
			break
		}
	}

	if len(acc.found) < minCandidates {
		s.scanRecipeAnchors(acc, dom)
	}
	if len(acc.found) < minCandidates {
		s.scanIngredientContainers(acc, dom)
	}
	if len(acc.found) < 1 {
		return s.wholeDocumentCandidate(dom, raw)
	}

	return s.finalize(acc)
}

// consider cleans, validates, and dedupes one raw match.
func (s *Segmenter) consider(acc *accumulator, sel *goquery.Selection, requireFood bool) {
	title := s.cleaner.Clean(sel.Text())
	if !s.cleaner.IsValid(title) {
		return
	}
	if requireFood && !s.mentionsFood(title) {
		return
	}
	acc.add(title, nearbyImage(sel, s.lib.ImageDenylist))
}

func (s *Segmenter) mentionsFood(title string) bool {
	lower := strings.ToLower(title)
	return patterns.ContainsAny(lower, s.lib.FoodKeywords) ||
		patterns.ContainsAny(lower, s.lib.CuisineKeywords) ||
		patterns.ContainsAny(lower, s.lib.CookingWords)
}

// scanRecipeAnchors is fallback (a): anchor text containing a literal
// "recipe"/"receta" mention.
func (s *Segmenter) scanRecipeAnchors(acc *accumulator, dom *goquery.Document) {
	dom.Find("a").EachWithBreak(func(i int, a *goquery.Selection) bool {
		text := strings.ToLower(a.Text())
		if strings.Contains(text, "recipe") || strings.Contains(text, "receta") {
			s.consider(acc, a, false)
		}
		return !acc.full()
	})
}

// scanIngredientContainers is fallback (b): count distinct ingredient-list
// containers and pair each with its nearest preceding heading.
func (s *Segmenter) scanIngredientContainers(acc *accumulator, dom *goquery.Document) {
	for _, selector := range s.lib.IngredientContainers {
		dom.Find(selector).EachWithBreak(func(i int, item *goquery.Selection) bool {
			list := item.Closest("ul, ol, div")
			if list.Length() == 0 {
				return true
			}
			// Distinct containers collapse through the accumulator's
			// title dedupe when they share a heading.
			if heading := precedingHeading(list); heading != nil {
				s.consider(acc, heading, false)
			}
			return !acc.full()
		})
		if acc.full() {
			return
		}
	}
}

// wholeDocumentCandidate is fallback (c): the document is one recipe.
func (s *Segmenter) wholeDocumentCandidate(dom *goquery.Document, raw *models.RawDocument) []models.RecipeCandidate {
	title := raw.PageTitle
	if dom != nil {
		if t := dom.Find("title").First().Text(); strings.TrimSpace(t) != "" {
			title = t
		}
	}
	title = s.cleaner.Clean(title)
	if title == "" {
		title = "Untitled recipe"
	}

	acc := newAccumulator(raw.SourceURL)
	acc.add(title, "")
	return s.finalize(acc)
}

// finalize attaches estimated secondary fields, derived purely from keyword
// matching against each cleaned title.
func (s *Segmenter) finalize(acc *accumulator) []models.RecipeCandidate {
	candidates := make([]models.RecipeCandidate, 0, len(acc.found))
	for i, f := range acc.found {
		est := s.classifier.Estimate(f.title)
		candidates = append(candidates, models.RecipeCandidate{
			ID:               fmt.Sprintf("candidate-%d", i+1),
			Title:            f.title,
			ImageURL:         f.image,
			Difficulty:       est.Difficulty,
			CookTimeMin:      est.CookTimeMin,
			Servings:         est.Servings,
			IngredientsCount: est.IngredientsCount,
			Category:         est.Category,
			SourceURL:        acc.sourceURL,
			SectionAnchor:    f.title,
			IsExtracted:      false,
		})
	}
	return candidates
}

type foundCandidate struct {
	title string
	image string
}

// accumulator preserves insertion order, dedupes by normalized title, and
// enforces the cap.
type accumulator struct {
	sourceURL string
	found     []foundCandidate
	seen      map[string]bool
}

func newAccumulator(sourceURL string) *accumulator {
	return &accumulator{sourceURL: sourceURL, seen: map[string]bool{}}
}

func (a *accumulator) add(title, image string) {
	if a.full() {
		return
	}
	key := models.NormalizeTitle(title)
	if key == "" || a.seen[key] {
		return
	}
	a.seen[key] = true
	a.found = append(a.found, foundCandidate{title: title, image: image})
}

func (a *accumulator) full() bool { return len(a.found) >= MaxCandidates }

// nearbyImage looks for a usable image near a matched node: inside it, or in
// its parent container.
func nearbyImage(sel *goquery.Selection, denylist []string) string {
	candidates := sel.Find("img")
	if candidates.Length() == 0 {
		candidates = sel.Parent().Find("img")
	}

	var found string
	candidates.EachWithBreak(func(i int, img *goquery.Selection) bool {
		src, _ := img.Attr("src")
		src = strings.TrimSpace(src)
		if src == "" {
			return true
		}
		if patterns.ContainsAny(strings.ToLower(src), denylist) {
			return true
		}
		found = src
		return false
	})
	return found
}

// precedingHeading walks backwards from a list to the closest heading above it.
func precedingHeading(list *goquery.Selection) *goquery.Selection {
	if h := list.PrevAllFiltered("h1, h2, h3, h4").First(); h.Length() > 0 {
		return h
	}
	parent := list.Parent()
	for parent.Length() > 0 && goquery.NodeName(parent) != "body" && goquery.NodeName(parent) != "html" {
		if h := parent.PrevAllFiltered("h1, h2, h3, h4").First(); h.Length() > 0 {
			return h
		}
		parent = parent.Parent()
	}
	return nil
}

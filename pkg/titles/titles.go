// Package titles normalizes raw matched title text and classifies whether a
// candidate string is plausibly a recipe title.
package titles

import (
	"html"
	"regexp"
	"strings"
	"unicode"

	"github.com/recetly/recipe-parser/pkg/patterns"
)

const (
	minTitleLen = 3
	maxTitleLen = 150
	// shortTitleLen is the length under which a food/cooking keyword is
	// required for validity. Longer titles vary too widely (roundups, blog
	// posts) to demand one.
	shortTitleLen = 8
	// retentionRatio guards against over-eager cleaning: if cleaning a title
	// longer than guardMinLen would keep less than this share of it, the
	// cleaner re-runs with a minimal rule subset instead.
	retentionRatio = 0.4
	guardMinLen    = 10
)

var (
	tagRe         = regexp.MustCompile(`<[^>]*>`)
	enumRe        = regexp.MustCompile(`^\s*(?:\d{1,3}[.)\-:]\s*|[-–—•*]\s+)`)
	timeAnnotRe   = regexp.MustCompile(`\s*[(\[][^()\[\]]*\d+\s*(?:min(?:utos|utes)?\.?|h(?:oras|ours|rs)?\.?)[^()\[\]]*[)\]]`)
	pureNumericRe = regexp.MustCompile(`^[\d\s.,\-/]+$`)
	digitRunRe    = regexp.MustCompile(`\d{6,}`)
	spaceRe       = regexp.MustCompile(`\s+`)
)

// Cleaner normalizes and validates recipe title candidates against a pattern
// library.
type Cleaner struct {
	lib *patterns.Library
}

func NewCleaner(lib *patterns.Library) *Cleaner {
	if lib == nil {
		lib = patterns.Default()
	}
	return &Cleaner{lib: lib}
}

// Clean runs the full normalization pipeline: entity decoding, markup and
// control-character stripping, whitespace collapsing, enumeration and
// boilerplate prefix/suffix removal, numeric-annotation removal, and first
// character capitalization. If the full pipeline would keep less than 40% of
// a title longer than 10 characters, it re-runs with a minimal rule subset so
// legitimate long titles containing a dash are not destroyed.
func (c *Cleaner) Clean(raw string) string {
	base := c.normalize(raw)
	cleaned := c.fullClean(base)

	if len([]rune(base)) > guardMinLen &&
		float64(len([]rune(cleaned))) < retentionRatio*float64(len([]rune(base))) {
		cleaned = c.minimalClean(base)
	}
	return capitalize(cleaned)
}

// normalize is the shared first stage: decode entities, strip tags and
// control characters, collapse whitespace.
func (c *Cleaner) normalize(raw string) string {
	s := html.UnescapeString(raw)
	s = tagRe.ReplaceAllString(s, " ")
	s = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func (c *Cleaner) fullClean(s string) string {
	s = enumRe.ReplaceAllString(s, "")

	lower := strings.ToLower(s)
	for _, prefix := range c.lib.TitlePrefixes {
		if strings.HasPrefix(lower, prefix) {
			s = s[len(prefix):]
			lower = lower[len(prefix):]
		}
	}

	// Drop trailing boilerplate after the first suffix separator.
	cut := -1
	for _, mark := range c.lib.TitleSuffixMarks {
		if idx := strings.Index(s, mark); idx > 0 && (cut == -1 || idx < cut) {
			cut = idx
		}
	}
	if cut > 0 {
		s = s[:cut]
	}

	s = timeAnnotRe.ReplaceAllString(s, "")
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// minimalClean is the conservative fallback: only truncate after a pipe.
func (c *Cleaner) minimalClean(s string) string {
	if idx := strings.Index(s, "|"); idx > 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// IsValid reports whether a candidate string is plausibly a recipe title.
// Titles at or above 8 characters are accepted permissively, rejecting only
// boilerplate and obvious spam signatures; shorter titles must contain a
// food, cuisine, or cooking keyword.
func (c *Cleaner) IsValid(title string) bool {
	t := strings.TrimSpace(title)
	n := len([]rune(t))
	if n < minTitleLen || n > maxTitleLen {
		return false
	}

	lower := strings.ToLower(t)
	norm := strings.Join(strings.Fields(lower), " ")

	for _, bp := range c.lib.BoilerplateTitles {
		if norm == bp {
			return false
		}
		// Multiword boilerplate (legal notices, sharing prompts) disqualifies
		// even as a fragment of a composite nav title.
		if strings.Contains(bp, " ") && strings.Contains(norm, bp) {
			return false
		}
	}

	if pureNumericRe.MatchString(t) {
		return false
	}
	if isSpam(t) {
		return false
	}

	if n < shortTitleLen {
		return patterns.ContainsAny(lower, c.lib.FoodKeywords) ||
			patterns.ContainsAny(lower, c.lib.CookingWords) ||
			patterns.ContainsAny(lower, c.lib.CuisineKeywords)
	}
	return true
}

// isSpam detects the obvious junk signatures: long uppercase runs, long digit
// runs, repeated symbol runs, and repeated-phrase padding.
func isSpam(t string) bool {
	run := 0
	for _, r := range t {
		if unicode.IsUpper(r) {
			run++
			if run > 10 {
				return true
			}
		} else if !unicode.IsSpace(r) {
			run = 0
		}
	}

	if digitRunRe.MatchString(t) || hasSymbolRun(t) {
		return true
	}

	// Repeated-phrase padding: the same word over and over.
	counts := map[string]int{}
	for _, w := range strings.Fields(strings.ToLower(t)) {
		if len([]rune(w)) < 3 {
			continue
		}
		counts[w]++
		if counts[w] >= 4 {
			return true
		}
	}
	return false
}

// hasSymbolRun reports whether t contains the same non-letter, non-digit,
// non-space rune four or more times in a row. This is the meaning of the
// backreference pattern `([^\p{L}\d\s])\1{3,}`, which Go's RE2-based regexp
// engine cannot compile; the character classes here mirror the regexp ones
// (\p{L}, \d = [0-9], \s = [\t\n\f\r ]).
func hasSymbolRun(t string) bool {
	var prev rune
	run := 0
	for _, r := range t {
		if unicode.IsLetter(r) || (r >= '0' && r <= '9') ||
			r == ' ' || r == '\t' || r == '\n' || r == '\f' || r == '\r' {
			prev = 0
			run = 0
			continue
		}
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run >= 4 {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

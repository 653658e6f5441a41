package fields

import (
	"regexp"
	"strconv"
	"strings"
)

var isoDurationRe = regexp.MustCompile(`(?i)^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?)?$`)

// ParseISODuration converts an ISO-8601 duration ("PT15M", "PT1H30M") to
// minutes. Seconds are ignored.
func ParseISODuration(s string) (int, bool) {
	m := isoDurationRe.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return 0, false
	}
	days := atoiDefault(m[1], 0)
	hours := atoiDefault(m[2], 0)
	mins := atoiDefault(m[3], 0)
	if days == 0 && hours == 0 && mins == 0 {
		return 0, false
	}
	return days*24*60 + hours*60 + mins, true
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return v
}

// timeMatcher finds "<label> ... N min" and "<label> ... N h" proximity
// matches in lowercase body text, plus the reversed "N min ... <label>" form
// as a last resort. Hour units are multiplied by 60.
type timeMatcher struct {
	minuteRe  *regexp.Regexp
	hourRe    *regexp.Regexp
	reverseRe *regexp.Regexp
}

func newTimeMatcher(labels []string) *timeMatcher {
	alt := strings.Join(labels, "|")
	return &timeMatcher{
		minuteRe:  regexp.MustCompile(`(?:` + alt + `)[^0-9]{0,50}?(\d{1,3})\s*(?:min(?:utos|utes|s)?\b|m\b)`),
		hourRe:    regexp.MustCompile(`(?:` + alt + `)[^0-9]{0,50}?(\d{1,2})\s*(?:h\b|hr\b|hora(?:s)?\b|hour(?:s)?\b)`),
		reverseRe: regexp.MustCompile(`(\d{1,3})\s*(?:min(?:utos|utes|s)?\b|m\b)[^.\n]{0,40}(?:` + alt + `)`),
	}
}

// Labeled returns minutes from a "label then number" match.
func (t *timeMatcher) Labeled(textLower string) (int, bool) {
	if m := t.minuteRe.FindStringSubmatch(textLower); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v, true
		}
	}
	if m := t.hourRe.FindStringSubmatch(textLower); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v * 60, true
		}
	}
	return 0, false
}

// Proximity returns minutes from the reversed "N min ... label" form.
func (t *timeMatcher) Proximity(textLower string) (int, bool) {
	if m := t.reverseRe.FindStringSubmatch(textLower); len(m) == 2 {
		if v, err := strconv.Atoi(m[1]); err == nil {
			return v, true
		}
	}
	return 0, false
}

// Package lang detects whether a document is written in Spanish or English,
// the two locales the keyword tables cover.
package lang

import (
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

// sampleLen caps how much text is fed to the detector; language is stable
// well before this and the model cost grows with input size.
const sampleLen = 2000

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.Spanish, lingua.English).
			Build()
	})
	return detector
}

// Detect returns "es", "en", or "unknown" for the given text.
func Detect(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return "unknown"
	}
	runes := []rune(text)
	if len(runes) > sampleLen {
		text = string(runes[:sampleLen])
	}

	language, ok := getDetector().DetectLanguageOf(text)
	if !ok {
		return "unknown"
	}
	switch language {
	case lingua.Spanish:
		return "es"
	case lingua.English:
		return "en"
	}
	return "unknown"
}

package detector

import (
	"regexp"
	"unicode"

	"relayout/internal/keymap"
)

// skipPatterns match words that are never layout mistakes: URLs, emails,
// filesystem paths, and delimited numeric literals. A word must fully match
// to be skipped.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^https?://\S+$`),
	regexp.MustCompile(`^\S+@\S+\.\S+$`),
	regexp.MustCompile(`^[a-zA-Z]:\\\S+$`),
	regexp.MustCompile(`^/[\w/]+$`),
	regexp.MustCompile(`^\d+[\d.,]+\d*$`),
}

// shouldSkip applies the cheap heuristics that keep the dictionary out of
// the hot path: too short, intentionally mixed script, digits, or a
// structural token.
func (d *Detector) shouldSkip(word string) bool {
	if len([]rune(word)) < d.opts.MinWordLength {
		return true
	}
	if keymap.DetectScript(word) == keymap.ScriptMixed {
		return true
	}
	for _, ch := range word {
		if unicode.IsDigit(ch) {
			return true
		}
	}
	for _, pattern := range skipPatterns {
		if pattern.MatchString(word) {
			return true
		}
	}
	return false
}

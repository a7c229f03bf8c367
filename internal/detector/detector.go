// Package detector buffers typed characters and decides at word boundaries
// whether the word was typed in the wrong layout.
package detector

import (
	"strings"

	"relayout/internal/dict"
	"relayout/internal/keymap"
)

// boundaryChars terminate a word for analysis purposes. Apostrophe, dash and
// underscore are intentionally absent: they occur inside words.
const boundaryChars = " \t\n\r.,;:!?()[]{}/<>@#$%^&*+=|\\~`\""

// Result describes one decided correction. Boundary is the character that
// flushed the word (0 for a forced check) and has already reached the
// application, so the replacer must consume it too.
type Result struct {
	Original  string
	Corrected string
	Direction keymap.Direction
	Boundary  rune
}

// Dictionary is the detector-facing subset of dictionary behavior.
type Dictionary interface {
	Check(word string, lang dict.Language) bool
	Record(word string, lang dict.Language) bool
}

// Options are the correction knobs the detector consults per decision.
type Options struct {
	MinWordLength int
}

// Detector is a single-owner state machine: empty until a non-boundary
// character arrives, accumulating until a boundary or reset. It is driven
// from one goroutine and holds no lock.
type Detector struct {
	opts   Options
	dict   Dictionary
	buffer []rune
}

// New constructs a detector over the given dictionary.
func New(opts Options, dictionary Dictionary) *Detector {
	if opts.MinWordLength < 1 {
		opts.MinWordLength = 1
	}
	return &Detector{opts: opts, dict: dictionary}
}

// IsBoundary reports whether ch terminates a word.
func IsBoundary(ch rune) bool {
	return strings.ContainsRune(boundaryChars, ch)
}

// FeedChar advances the state machine by one logical character. At a word
// boundary the buffered word is analyzed and cleared; the result is non-nil
// only when a correction is warranted.
func (d *Detector) FeedChar(ch rune) *Result {
	if IsBoundary(ch) {
		result := d.analyze()
		d.buffer = d.buffer[:0]
		if result != nil {
			result.Boundary = ch
		}
		return result
	}
	d.buffer = append(d.buffer, ch)
	return nil
}

// Reset discards the buffered word without analysis (navigation, modifiers,
// focus changes).
func (d *Detector) Reset() {
	d.buffer = d.buffer[:0]
}

// Pending returns the number of buffered characters.
func (d *Detector) Pending() int {
	return len(d.buffer)
}

// ForceCheck remaps the buffered word by script alone, bypassing the
// dictionary (the manual-correction hotkey). The buffer is cleared whenever
// it was non-empty.
func (d *Detector) ForceCheck() *Result {
	if len(d.buffer) == 0 {
		return nil
	}
	word := string(d.buffer)
	d.buffer = d.buffer[:0]

	switch keymap.DetectScript(word) {
	case keymap.ScriptLatin:
		return &Result{
			Original:  word,
			Corrected: keymap.Remap(word, keymap.EnToRu),
			Direction: keymap.EnToRu,
		}
	case keymap.ScriptCyrillic:
		return &Result{
			Original:  word,
			Corrected: keymap.Remap(word, keymap.RuToEn),
			Direction: keymap.RuToEn,
		}
	default:
		return nil
	}
}

// analyze applies the skip heuristics and the asymmetric dictionary rule: a
// correction fires only when the word as typed is unknown and its remap is
// known. Every definitive classification is recorded so the vocabulary also
// grows from correctly typed words.
func (d *Detector) analyze() *Result {
	if len(d.buffer) == 0 {
		return nil
	}
	word := string(d.buffer)
	if d.shouldSkip(word) {
		return nil
	}

	switch keymap.DetectScript(word) {
	case keymap.ScriptLatin:
		return d.decide(word, dict.LangEN, dict.LangRU, keymap.EnToRu)
	case keymap.ScriptCyrillic:
		return d.decide(word, dict.LangRU, dict.LangEN, keymap.RuToEn)
	default:
		return nil
	}
}

// decide implements one direction of the dictionary check; typedLang is the
// language the word's script suggests, remapLang the language it would be in
// if the layout was wrong.
func (d *Detector) decide(word string, typedLang, remapLang dict.Language, direction keymap.Direction) *Result {
	if d.dict.Check(word, typedLang) {
		d.dict.Record(word, typedLang)
		return nil
	}

	remapped := keymap.Remap(word, direction)
	if d.dict.Check(remapped, remapLang) {
		d.dict.Record(remapped, remapLang)
		return &Result{Original: word, Corrected: remapped, Direction: direction}
	}

	// Unknown in both vocabularies: do not guess.
	return nil
}

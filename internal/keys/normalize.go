package keys

import (
	"unicode"
	"unicode/utf8"

	"relayout/internal/keymap"
)

// Normalize resolves a physical key plus modifier and layout state into the
// logical character the application sees. Two stages: the physical shift
// table first (letters uppercase, punctuation pairs), then the layout table
// when the Cyrillic layout is active. Shift and layout state are supplied by
// the event source; this function reads no OS state.
func Normalize(key PhysicalKey, shift bool, layout Layout) (rune, Signal) {
	if _, reset := resetKeys[key]; reset {
		return 0, SignalReset
	}

	switch key {
	case "space":
		return ' ', SignalChar
	case "enter":
		return '\n', SignalChar
	}

	if utf8.RuneCountInString(string(key)) != 1 {
		return 0, SignalIgnore
	}
	ch, _ := utf8.DecodeRuneInString(string(key))

	if shift {
		if shifted, ok := shiftTable[ch]; ok {
			ch = shifted
		} else {
			ch = unicode.ToUpper(ch)
		}
	}

	if layout == LayoutSecondary {
		ch = keymap.Forward(ch)
	}

	return ch, SignalChar
}

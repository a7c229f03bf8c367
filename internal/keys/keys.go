// Package keys turns physical key events into the logical character the
// focused application receives, independent of any OS state.
package keys

// PhysicalKey names a key by the character it produces unshifted on the US
// layout ("a", "1", ","), or by a lowercase key name for non-printing keys
// ("space", "enter", "backspace", "leftshift", ...).
type PhysicalKey string

// Layout identifies the active keyboard layout of the focused input.
type Layout string

const (
	// LayoutPrimary is the Latin (US QWERTY) layout.
	LayoutPrimary Layout = "us"
	// LayoutSecondary is the Cyrillic (ЙЦУКЕН) layout.
	LayoutSecondary Layout = "ru"
)

// Signal classifies what a normalized key event means to the detector.
type Signal int

const (
	// SignalChar carries a logical character for the word buffer.
	SignalChar Signal = iota
	// SignalReset discards the word buffer without analysis.
	SignalReset
	// SignalIgnore carries nothing (function keys, unknown names).
	SignalIgnore
)

// resetKeys are navigation/editing and modifier keys. Any of them
// invalidates the buffered word: the caret may have moved or the word may
// have been edited out from under us.
var resetKeys = map[PhysicalKey]struct{}{
	"backspace": {}, "delete": {}, "insert": {},
	"home": {}, "end": {}, "pageup": {}, "pagedown": {},
	"left": {}, "right": {}, "up": {}, "down": {},
	"tab": {}, "escape": {},
	"leftshift": {}, "rightshift": {},
	"leftctrl": {}, "rightctrl": {},
	"leftalt": {}, "rightalt": {},
	"leftmeta": {}, "rightmeta": {},
	"capslock": {},
}

// shiftTable maps unshifted US punctuation/digit keys to their shifted
// characters (physical shift pairs, not layout dependent).
var shiftTable = map[rune]rune{
	'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
	'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
	'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
	';': ':', '\'': '"', ',': '<', '.': '>', '/': '?',
	'`': '~',
}

// Package config resolves, parses, validates, and defaults relayout configuration.
package config

// Config is the fully materialized runtime configuration used by relayout.
type Config struct {
	MinWordLength      int
	AutoLearnThreshold int
	AutoCorrect        bool
	Notify             bool
	ExcludedWindows    []string
	Keyboard           KeyboardConfig
	Output             OutputConfig
	Delays             DelayConfig
	Dictionary         DictionaryConfig
}

// KeyboardConfig controls input-device selection and layout polling.
type KeyboardConfig struct {
	// Device is an evdev node path; empty triggers autodetection.
	Device       string
	LayoutPollMS int
}

// OutputConfig controls how corrected text is emitted to the focused window.
type OutputConfig struct {
	// Mode selects the sink: "wtype" retypes characters, "clipboard"
	// replaces via clipboard save/write/paste/restore.
	Mode           string
	TypeCmd        CommandConfig
	DeleteCmd      CommandConfig
	ClipboardRead  CommandConfig
	ClipboardWrite CommandConfig
	PasteShortcut  string
}

// DelayConfig controls pacing around destructive output operations.
type DelayConfig struct {
	PreMS         int
	BetweenKeysMS int
	PostMS        int
}

// DictionaryConfig controls where word lists live on disk.
type DictionaryConfig struct {
	// Dir overrides the XDG data location; empty uses the default.
	Dir string
}

// CommandConfig stores a raw command string and its parsed argv form.
type CommandConfig struct {
	Raw  string
	Argv []string
}

// Warning is a non-fatal parse/validation message.
type Warning struct {
	Line    int
	Message string
}

package config

// Default returns the canonical runtime configuration used when no file is present.
func Default() Config {
	typeCmd := "wtype -"
	deleteCmd := "wtype -k BackSpace"
	clipboardRead := "wl-paste --no-newline"
	clipboardWrite := "wl-copy --trim-newline"

	return Config{
		MinWordLength:      2,
		AutoLearnThreshold: 3,
		AutoCorrect:        true,
		Notify:             true,
		ExcludedWindows:    nil,
		Keyboard: KeyboardConfig{
			Device:       "",
			LayoutPollMS: 500,
		},
		Output: OutputConfig{
			Mode:           "wtype",
			TypeCmd:        CommandConfig{Raw: typeCmd, Argv: mustSplitCommandLine(typeCmd)},
			DeleteCmd:      CommandConfig{Raw: deleteCmd, Argv: mustSplitCommandLine(deleteCmd)},
			ClipboardRead:  CommandConfig{Raw: clipboardRead, Argv: mustSplitCommandLine(clipboardRead)},
			ClipboardWrite: CommandConfig{Raw: clipboardWrite, Argv: mustSplitCommandLine(clipboardWrite)},
			PasteShortcut:  "CTRL,V",
		},
		Delays: DelayConfig{
			PreMS:         10,
			BetweenKeysMS: 20,
			PostMS:        50,
		},
		Dictionary: DictionaryConfig{Dir: ""},
	}
}

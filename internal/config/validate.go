package config

import (
	"fmt"
	"strings"
)

// Validate enforces config invariants and returns non-fatal warnings.
func Validate(cfg Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if cfg.MinWordLength < 1 {
		return nil, fmt.Errorf("min_word_length must be >= 1")
	}
	if cfg.AutoLearnThreshold < 1 {
		return nil, fmt.Errorf("auto_learn_threshold must be >= 1")
	}
	if cfg.Keyboard.LayoutPollMS <= 0 {
		return nil, fmt.Errorf("keyboard.layout_poll_ms must be > 0")
	}
	if cfg.Delays.PreMS < 0 || cfg.Delays.BetweenKeysMS < 0 || cfg.Delays.PostMS < 0 {
		return nil, fmt.Errorf("delays must be >= 0")
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.Output.Mode))
	switch mode {
	case "wtype":
		if len(cfg.Output.TypeCmd.Argv) == 0 {
			return nil, fmt.Errorf("output.type_cmd must not be empty when output.mode=wtype")
		}
		if len(cfg.Output.DeleteCmd.Argv) == 0 {
			return nil, fmt.Errorf("output.delete_cmd must not be empty when output.mode=wtype")
		}
	case "clipboard":
		if len(cfg.Output.ClipboardRead.Argv) == 0 {
			return nil, fmt.Errorf("output.clipboard_read_cmd must not be empty when output.mode=clipboard")
		}
		if len(cfg.Output.ClipboardWrite.Argv) == 0 {
			return nil, fmt.Errorf("output.clipboard_write_cmd must not be empty when output.mode=clipboard")
		}
		if len(cfg.Output.DeleteCmd.Argv) == 0 {
			return nil, fmt.Errorf("output.delete_cmd must not be empty when output.mode=clipboard")
		}
		if strings.TrimSpace(cfg.Output.PasteShortcut) == "" {
			return nil, fmt.Errorf("output.paste_shortcut must not be empty when output.mode=clipboard")
		}
	case "":
		return nil, fmt.Errorf("output.mode must not be empty")
	default:
		return nil, fmt.Errorf("output.mode must be one of: wtype, clipboard")
	}

	if cfg.MinWordLength > 16 {
		warnings = append(warnings, Warning{Message: fmt.Sprintf("min_word_length=%d leaves most words unchecked", cfg.MinWordLength)})
	}

	return warnings, nil
}

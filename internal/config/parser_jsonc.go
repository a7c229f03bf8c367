package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

type jsoncConfig struct {
	MinWordLength      *int             `json:"min_word_length"`
	AutoLearnThreshold *int             `json:"auto_learn_threshold"`
	AutoCorrect        *bool            `json:"auto_correct"`
	Notify             *bool            `json:"notify"`
	ExcludedWindows    *jsoncStringList `json:"excluded_windows"`
	Keyboard           *jsoncKeyboard   `json:"keyboard"`
	Output             *jsoncOutput     `json:"output"`
	Delays             *jsoncDelays     `json:"delays"`
	Dictionary         *jsoncDictionary `json:"dictionary"`
}

type jsoncKeyboard struct {
	Device       *string `json:"device"`
	LayoutPollMS *int    `json:"layout_poll_ms"`
}

type jsoncOutput struct {
	Mode              *string `json:"mode"`
	TypeCmd           *string `json:"type_cmd"`
	DeleteCmd         *string `json:"delete_cmd"`
	ClipboardReadCmd  *string `json:"clipboard_read_cmd"`
	ClipboardWriteCmd *string `json:"clipboard_write_cmd"`
	PasteShortcut     *string `json:"paste_shortcut"`
}

type jsoncDelays struct {
	PreMS         *int `json:"pre_ms"`
	BetweenKeysMS *int `json:"between_keys_ms"`
	PostMS        *int `json:"post_ms"`
}

type jsoncDictionary struct {
	Dir *string `json:"dir"`
}

type jsoncStringList []string

func (l *jsoncStringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		parts := strings.Split(single, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			out = append(out, part)
		}
		*l = out
		return nil
	}

	return fmt.Errorf("expected string array or comma-delimited string")
}

func parseJSONC(content string, base Config) (Config, []Warning, error) {
	normalized, err := normalizeJSONC(content)
	if err != nil {
		return Config{}, nil, err
	}

	decoder := json.NewDecoder(strings.NewReader(normalized))
	decoder.DisallowUnknownFields()

	var payload jsoncConfig
	if err := decoder.Decode(&payload); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}
	if err := ensureSingleJSONValue(decoder); err != nil {
		return Config{}, nil, wrapJSONDecodeError(normalized, err)
	}

	cfg := base
	warnings, err := payload.applyTo(&cfg)
	if err != nil {
		return Config{}, nil, err
	}

	validatedWarnings, err := Validate(cfg)
	if err != nil {
		return Config{}, nil, err
	}
	warnings = append(warnings, validatedWarnings...)
	return cfg, warnings, nil
}

func (payload jsoncConfig) applyTo(cfg *Config) ([]Warning, error) {
	warnings := make([]Warning, 0)

	if payload.MinWordLength != nil {
		cfg.MinWordLength = *payload.MinWordLength
	}
	if payload.AutoLearnThreshold != nil {
		cfg.AutoLearnThreshold = *payload.AutoLearnThreshold
	}
	if payload.AutoCorrect != nil {
		cfg.AutoCorrect = *payload.AutoCorrect
	}
	if payload.Notify != nil {
		cfg.Notify = *payload.Notify
	}

	if payload.ExcludedWindows != nil {
		cfg.ExcludedWindows = cfg.ExcludedWindows[:0]
		for _, name := range *payload.ExcludedWindows {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			cfg.ExcludedWindows = append(cfg.ExcludedWindows, name)
		}
	}

	if payload.Keyboard != nil {
		if payload.Keyboard.Device != nil {
			cfg.Keyboard.Device = strings.TrimSpace(*payload.Keyboard.Device)
		}
		if payload.Keyboard.LayoutPollMS != nil {
			cfg.Keyboard.LayoutPollMS = *payload.Keyboard.LayoutPollMS
		}
	}

	if payload.Output != nil {
		if payload.Output.Mode != nil {
			cfg.Output.Mode = strings.ToLower(strings.TrimSpace(*payload.Output.Mode))
		}
		if payload.Output.PasteShortcut != nil {
			cfg.Output.PasteShortcut = strings.TrimSpace(*payload.Output.PasteShortcut)
		}

		commands := []struct {
			key   string
			raw   *string
			field *CommandConfig
		}{
			{"output.type_cmd", payload.Output.TypeCmd, &cfg.Output.TypeCmd},
			{"output.delete_cmd", payload.Output.DeleteCmd, &cfg.Output.DeleteCmd},
			{"output.clipboard_read_cmd", payload.Output.ClipboardReadCmd, &cfg.Output.ClipboardRead},
			{"output.clipboard_write_cmd", payload.Output.ClipboardWriteCmd, &cfg.Output.ClipboardWrite},
		}
		for _, cmd := range commands {
			if cmd.raw == nil {
				continue
			}
			argv, err := splitCommandLine(*cmd.raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", cmd.key, err)
			}
			*cmd.field = CommandConfig{Raw: *cmd.raw, Argv: argv}
		}
	}

	if payload.Delays != nil {
		if payload.Delays.PreMS != nil {
			cfg.Delays.PreMS = *payload.Delays.PreMS
		}
		if payload.Delays.BetweenKeysMS != nil {
			cfg.Delays.BetweenKeysMS = *payload.Delays.BetweenKeysMS
		}
		if payload.Delays.PostMS != nil {
			cfg.Delays.PostMS = *payload.Delays.PostMS
		}
	}

	if payload.Dictionary != nil && payload.Dictionary.Dir != nil {
		cfg.Dictionary.Dir = strings.TrimSpace(*payload.Dictionary.Dir)
	}

	return warnings, nil
}

func normalizeJSONC(content string) (string, error) {
	withoutComments, err := stripJSONCComments(content)
	if err != nil {
		return "", err
	}
	return stripJSONCTrailingCommas(withoutComments), nil
}

func stripJSONCComments(content string) (string, error) {
	var out strings.Builder
	out.Grow(len(content))

	inString := false
	escape := false
	lineComment := false
	blockComment := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if lineComment {
			if ch == '\n' {
				lineComment = false
				out.WriteByte(ch)
				continue
			}
			if ch == '\r' {
				lineComment = false
				out.WriteByte(ch)
				continue
			}
			out.WriteByte(' ')
			continue
		}

		if blockComment {
			if ch == '*' && i+1 < len(content) && content[i+1] == '/' {
				blockComment = false
				out.WriteString("  ")
				i++
				continue
			}
			if ch == '\n' || ch == '\r' || ch == '\t' {
				out.WriteByte(ch)
			} else {
				out.WriteByte(' ')
			}
			continue
		}

		if inString {
			out.WriteByte(ch)
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			out.WriteByte(ch)
			continue
		}

		if ch == '/' && i+1 < len(content) {
			next := content[i+1]
			if next == '/' {
				lineComment = true
				out.WriteString("  ")
				i++
				continue
			}
			if next == '*' {
				blockComment = true
				out.WriteString("  ")
				i++
				continue
			}
		}

		out.WriteByte(ch)
	}

	if blockComment {
		return "", fmt.Errorf("unterminated block comment in JSONC")
	}

	return out.String(), nil
}

func stripJSONCTrailingCommas(content string) string {
	var out strings.Builder
	out.Grow(len(content))

	inString := false
	escape := false

	for i := 0; i < len(content); i++ {
		ch := content[i]

		if inString {
			out.WriteByte(ch)
			if escape {
				escape = false
				continue
			}
			if ch == '\\' {
				escape = true
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}

		if ch == '"' {
			inString = true
			out.WriteByte(ch)
			continue
		}

		if ch == ',' {
			j := i + 1
			for j < len(content) && isJSONWhitespace(content[j]) {
				j++
			}
			if j < len(content) && (content[j] == '}' || content[j] == ']') {
				continue
			}
		}

		out.WriteByte(ch)
	}

	return out.String()
}

func isJSONWhitespace(ch byte) bool {
	switch ch {
	case ' ', '\n', '\r', '\t':
		return true
	default:
		return false
	}
}

func ensureSingleJSONValue(decoder *json.Decoder) error {
	var extra struct{}
	err := decoder.Decode(&extra)
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err == nil {
		return fmt.Errorf("multiple JSON values are not allowed")
	}
	return err
}

func wrapJSONDecodeError(content string, err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) {
		line, col := offsetToLineCol(content, syntaxErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		line, col := offsetToLineCol(content, typeErr.Offset)
		return fmt.Errorf("line %d column %d: %w", line, col, err)
	}

	return err
}

func offsetToLineCol(content string, offset int64) (int, int) {
	if offset <= 0 {
		return 1, 1
	}

	limit := int(offset)
	if limit > len(content) {
		limit = len(content)
	}

	line := 1
	col := 1
	for i := 0; i < limit-1; i++ {
		if content[i] == '\n' {
			line++
			col = 1
			continue
		}
		col++
	}
	return line, col
}

package config

import (
	"fmt"
	"strings"
	"unicode"
)

// splitCommandLine splits a command string into an argv slice with
// shell-style single/double quoting and backslash escapes. Blank input
// and comment lines yield a nil argv.
func splitCommandLine(input string) ([]string, error) {
	input = strings.TrimSpace(input)
	if input == "" || strings.HasPrefix(input, "#") {
		return nil, nil
	}

	var argv []string
	var word strings.Builder
	inWord := false
	quote := rune(0)
	escaped := false

	for _, r := range input {
		switch {
		case escaped:
			word.WriteRune(r)
			inWord = true
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				word.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				argv = append(argv, word.String())
				word.Reset()
				inWord = false
			}
		default:
			word.WriteRune(r)
			inWord = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("unterminated escape sequence in command: %q", input)
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated quote in command: %q", input)
	}
	if inWord {
		argv = append(argv, word.String())
	}
	return argv, nil
}

// mustSplitCommandLine is splitCommandLine for compile-time default
// commands that are known to be well formed.
func mustSplitCommandLine(input string) []string {
	argv, err := splitCommandLine(input)
	if err != nil {
		panic(err)
	}
	return argv
}

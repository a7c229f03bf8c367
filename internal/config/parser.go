// Package config resolves, parses, validates, and defaults relayout configuration.
package config

import (
	"fmt"
	"strings"
)

// Parse reads configuration content as a JSONC object layered over base.
func Parse(content string, base Config) (Config, []Warning, error) {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		validatedWarnings, err := Validate(base)
		if err != nil {
			return Config{}, nil, err
		}
		return base, validatedWarnings, nil
	}

	if !strings.HasPrefix(trimmed, "{") {
		return Config{}, nil, fmt.Errorf("config must be a JSONC object starting with '{'")
	}

	return parseJSONC(content, base)
}

package config

import (
	"errors"
	"fmt"
	"os"
)

// Loaded is the result of resolving and parsing the config file. Exists
// is false when no file was found and defaults were used as-is.
type Loaded struct {
	Path     string
	Config   Config
	Warnings []Warning
	Exists   bool
}

// Load resolves the config path, parses the file if present, and
// validates the result. A missing file is not an error; it yields the
// defaults plus a warning so the user can tell which path was probed.
func Load(explicitPath string) (Loaded, error) {
	resolvedPath, err := ResolvePath(explicitPath)
	if err != nil {
		return Loaded{}, err
	}

	loaded := Loaded{Path: resolvedPath, Config: Default()}

	content, err := os.ReadFile(resolvedPath)
	if errors.Is(err, os.ErrNotExist) {
		loaded.Warnings = []Warning{{
			Message: fmt.Sprintf("config file %q not found; using defaults", resolvedPath),
		}}
		return loaded, nil
	}
	if err != nil {
		return Loaded{}, fmt.Errorf("read config %q: %w", resolvedPath, err)
	}

	cfg, warnings, err := Parse(string(content), loaded.Config)
	if err != nil {
		return Loaded{}, fmt.Errorf("parse config %q: %w", resolvedPath, err)
	}

	loaded.Config = cfg
	loaded.Warnings = warnings
	loaded.Exists = true
	return loaded, nil
}

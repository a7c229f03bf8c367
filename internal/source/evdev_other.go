//go:build !linux

package source

import (
	"context"
	"errors"
	"log/slog"

	"relayout/internal/keys"
)

// LayoutFunc reports the currently active layout of the focused input.
type LayoutFunc func() keys.Layout

// EvdevSource is only functional on Linux; elsewhere Start fails.
type EvdevSource struct{}

func NewEvdevSource(device string, layout LayoutFunc, logger *slog.Logger) *EvdevSource {
	return &EvdevSource{}
}

func (s *EvdevSource) Start(ctx context.Context) (<-chan KeyEvent, error) {
	return nil, errors.New("keyboard capture requires linux evdev")
}

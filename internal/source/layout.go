package source

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"relayout/internal/hypr"
	"relayout/internal/keys"
)

// LayoutPoller caches the compositor's active keymap so the capture loop
// never shells out per keystroke.
type LayoutPoller struct {
	interval time.Duration
	query    func(ctx context.Context) (string, error)
	logger   *slog.Logger

	mu      sync.RWMutex
	current keys.Layout
}

// NewLayoutPoller builds a poller backed by the Hyprland devices query.
func NewLayoutPoller(interval time.Duration, logger *slog.Logger) *LayoutPoller {
	return &LayoutPoller{
		interval: interval,
		query:    hypr.QueryActiveKeymap,
		logger:   logger,
		current:  keys.LayoutPrimary,
	}
}

// Layout returns the last observed layout.
func (p *LayoutPoller) Layout() keys.Layout {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Run polls until ctx is cancelled. Query failures keep the previous value;
// a corrector that briefly assumes the wrong layout just skips corrections.
func (p *LayoutPoller) Run(ctx context.Context) {
	p.poll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll(ctx)
		}
	}
}

func (p *LayoutPoller) poll(ctx context.Context) {
	keymapName, err := p.query(ctx)
	if err != nil {
		if p.logger != nil {
			p.logger.Debug("query active keymap failed", "error", err.Error())
		}
		return
	}

	layout := ClassifyKeymap(keymapName)
	p.mu.Lock()
	p.current = layout
	p.mu.Unlock()
}

// ClassifyKeymap maps a compositor keymap name onto one of the two layouts
// the corrector distinguishes.
func ClassifyKeymap(name string) keys.Layout {
	if strings.Contains(strings.ToLower(name), "rus") {
		return keys.LayoutSecondary
	}
	return keys.LayoutPrimary
}

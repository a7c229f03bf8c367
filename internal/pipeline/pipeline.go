// Package pipeline consumes key events in order and drives word detection
// and replacement.
package pipeline

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"relayout/internal/detector"
	"relayout/internal/hypr"
	"relayout/internal/keys"
	"relayout/internal/source"
)

// Engine is the pipeline-facing subset of replacement behavior.
type Engine interface {
	Replace(ctx context.Context, original, corrected string, boundary rune) bool
	IsReplacing() bool
}

// Notifier announces applied corrections. May be nil.
type Notifier interface {
	CorrectionApplied(ctx context.Context, original, corrected string)
}

// Options configure event filtering.
type Options struct {
	// ExcludedWindows lists window classes whose keystrokes are ignored.
	ExcludedWindows []string
	// ForegroundTTL bounds how long a focused-window lookup is reused.
	ForegroundTTL time.Duration
	// AutoCorrect is the initial auto-mode state.
	AutoCorrect bool
}

// Pipeline is the processing context between the capture loop and the
// replacement engine. It consumes events strictly in order; anything slow
// (the replacement itself) is handed off so the queue keeps draining.
type Pipeline struct {
	logger   *slog.Logger
	engine   Engine
	notifier Notifier
	opts     Options

	// detMu serializes detector access between the event loop and the
	// force command arriving over IPC.
	detMu sync.Mutex
	det   *detector.Detector

	foreground func(ctx context.Context) (string, error)

	fgMu      sync.Mutex
	fgClass   string
	fgFetched time.Time

	autoMu sync.Mutex
	auto   bool
}

// New constructs a pipeline over the detector and engine.
func New(det *detector.Detector, engine Engine, notifier Notifier, opts Options, logger *slog.Logger) *Pipeline {
	if opts.ForegroundTTL <= 0 {
		opts.ForegroundTTL = time.Second
	}
	p := &Pipeline{
		logger:   logger,
		det:      det,
		engine:   engine,
		notifier: notifier,
		opts:     opts,
		auto:     opts.AutoCorrect,
	}
	p.foreground = func(ctx context.Context) (string, error) {
		window, err := hypr.QueryActiveWindow(ctx)
		if err != nil {
			return "", err
		}
		return window.Class, nil
	}
	return p
}

// Auto reports whether automatic correction is active.
func (p *Pipeline) Auto() bool {
	p.autoMu.Lock()
	defer p.autoMu.Unlock()
	return p.auto
}

// Toggle flips auto-mode and returns the new state.
func (p *Pipeline) Toggle() bool {
	p.autoMu.Lock()
	defer p.autoMu.Unlock()
	p.auto = !p.auto
	return p.auto
}

// Run drains the event channel until ctx is cancelled or the channel closes.
func (p *Pipeline) Run(ctx context.Context, events <-chan source.KeyEvent) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			p.handle(ctx, event)
		}
	}
}

// handle advances the detector by one key event.
func (p *Pipeline) handle(ctx context.Context, event source.KeyEvent) {
	// The engine's own synthetic keystrokes come back through the device;
	// consuming them would corrupt the word buffer.
	if p.engine.IsReplacing() {
		return
	}

	ch, signal := keys.Normalize(event.Key, event.Shift, event.Layout)

	p.detMu.Lock()
	defer p.detMu.Unlock()

	if event.Gap {
		// The capture queue overflowed before this event; whatever is
		// buffered is missing keystrokes and must not be analyzed.
		p.det.Reset()
	}

	switch signal {
	case keys.SignalReset:
		p.det.Reset()
		return
	case keys.SignalIgnore:
		return
	}

	if p.foregroundExcluded(ctx) {
		p.det.Reset()
		return
	}

	if !p.Auto() {
		// Keep the buffer current so a manual force still works, but skip
		// boundary analysis: paused means no lookups and no learning.
		if detector.IsBoundary(ch) {
			p.det.Reset()
		} else {
			p.det.FeedChar(ch)
		}
		return
	}

	result := p.det.FeedChar(ch)
	if result == nil {
		return
	}

	go p.apply(ctx, result.Original, result.Corrected, result.Boundary)
}

// Force remaps the currently buffered word regardless of dictionaries.
func (p *Pipeline) Force(ctx context.Context) (original, corrected string, ok bool) {
	p.detMu.Lock()
	result := p.det.ForceCheck()
	p.detMu.Unlock()
	if result == nil {
		return "", "", false
	}
	if !p.engine.Replace(ctx, result.Original, result.Corrected, result.Boundary) {
		return "", "", false
	}
	return result.Original, result.Corrected, true
}

func (p *Pipeline) apply(ctx context.Context, original, corrected string, boundary rune) {
	if !p.engine.Replace(ctx, original, corrected, boundary) {
		return
	}
	if p.logger != nil {
		p.logger.Info("correction applied", "from", original, "to", corrected)
	}
	if p.notifier != nil {
		p.notifier.CorrectionApplied(ctx, original, corrected)
	}
}

// foregroundExcluded checks the focused window class against the exclusion
// list. Lookups shell out to hyprctl, so the result is cached briefly; a
// failed lookup counts as not excluded.
func (p *Pipeline) foregroundExcluded(ctx context.Context) bool {
	if len(p.opts.ExcludedWindows) == 0 {
		return false
	}

	p.fgMu.Lock()
	defer p.fgMu.Unlock()

	if time.Since(p.fgFetched) > p.opts.ForegroundTTL {
		class, err := p.foreground(ctx)
		if err != nil {
			if p.logger != nil {
				p.logger.Debug("active window lookup failed", "error", err.Error())
			}
			class = ""
		}
		p.fgClass = class
		p.fgFetched = time.Now()
	}

	for _, excluded := range p.opts.ExcludedWindows {
		if strings.EqualFold(p.fgClass, excluded) {
			return true
		}
	}
	return false
}

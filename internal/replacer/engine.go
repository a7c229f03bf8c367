// Package replacer executes decided corrections against the focused
// application and keeps a time-bounded undo history.
package replacer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"relayout/internal/fsm"
)

// Sink emits synthetic input to the focused application.
type Sink interface {
	// Delete removes count characters before the caret.
	Delete(ctx context.Context, count int) error
	// Insert types text at the caret.
	Insert(ctx context.Context, text string) error
}

// Delays pace the delete/insert sequence so asynchronous delivery to the
// foreground application keeps up. Empirically tuned, not protocol
// guarantees.
type Delays struct {
	Pre       time.Duration
	PreInsert time.Duration
	Post      time.Duration
}

// Engine owns the suppression state and the undo ring. Only one replacement
// or undo is ever in flight; attempts while busy fail fast with false.
type Engine struct {
	logger *slog.Logger
	sink   Sink
	delays Delays
	now    func() time.Time

	mu    sync.Mutex
	state fsm.State
	undo  []UndoEntry
}

// New constructs an engine over the given output sink.
func New(sink Sink, delays Delays, logger *slog.Logger) *Engine {
	return &Engine{
		logger: logger,
		sink:   sink,
		delays: delays,
		now:    time.Now,
		state:  fsm.StateIdle,
	}
}

// IsReplacing reports whether a synthetic-output sequence is in flight.
// The pipeline consults this to discard the engine's own keystrokes.
func (e *Engine) IsReplacing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state == fsm.StateReplacing
}

// State returns the current engine state for status reporting.
func (e *Engine) State() fsm.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// begin claims exclusivity. It fails when a replacement is already running.
func (e *Engine) begin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, err := fsm.Transition(e.state, fsm.EventBegin)
	if err != nil {
		return false
	}
	e.state = next
	return true
}

// finish releases exclusivity. It runs on every exit path so a failed
// output call can never leave the pipeline suppressed forever.
func (e *Engine) finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	next, err := fsm.Transition(e.state, fsm.EventFinish)
	if err != nil {
		return
	}
	e.state = next
}

// Replace deletes the just-typed word (plus its boundary character, which
// already reached the application) and types the corrected form. A
// successful replacement is pushed onto the undo ring.
func (e *Engine) Replace(ctx context.Context, original, corrected string, boundary rune) bool {
	if !e.begin() {
		e.logWarn("replacement already in flight, dropping correction",
			"original", original)
		return false
	}
	defer e.finish()

	if !e.emit(ctx, original, corrected, boundary) {
		return false
	}

	e.mu.Lock()
	e.pushUndoLocked(UndoEntry{
		Original:  original,
		Corrected: corrected,
		Boundary:  boundary,
		Timestamp: e.now(),
	})
	e.mu.Unlock()
	return true
}

// UndoLast reverts the most recent correction when it is still inside the
// undo window. A stale or absent entry returns false and leaves the ring
// untouched.
func (e *Engine) UndoLast(ctx context.Context) bool {
	// Claim exclusivity before touching the ring so a concurrent Replace
	// cannot push a new entry between the peek and the pop.
	if !e.begin() {
		return false
	}
	defer e.finish()

	e.mu.Lock()
	entry, ok := e.peekUndoLocked()
	if !ok || e.now().Sub(entry.Timestamp) > undoWindow {
		e.mu.Unlock()
		return false
	}
	e.popUndoLocked()
	e.mu.Unlock()

	return e.emit(ctx, entry.Corrected, entry.Original, entry.Boundary)
}

// emit performs one paced delete-then-insert sequence.
func (e *Engine) emit(ctx context.Context, from, to string, boundary rune) bool {
	// Let the boundary character reach the application first.
	time.Sleep(e.delays.Pre)

	count := len([]rune(from))
	if boundary != 0 {
		count++
	}
	if err := e.sink.Delete(ctx, count); err != nil {
		e.logWarn("delete failed", "count", count, "error", err.Error())
		return false
	}

	time.Sleep(e.delays.PreInsert)

	text := to
	if boundary != 0 {
		text += string(boundary)
	}
	if err := e.sink.Insert(ctx, text); err != nil {
		e.logWarn("insert failed", "length", len(text), "error", err.Error())
		return false
	}

	time.Sleep(e.delays.Post)
	return true
}

func (e *Engine) logWarn(message string, args ...any) {
	if e.logger == nil {
		return
	}
	e.logger.Warn(message, args...)
}

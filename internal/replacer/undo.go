package replacer

import "time"

const (
	// undoCapacity bounds the ring; the oldest entry is evicted first.
	undoCapacity = 20
	// undoWindow is how long a correction stays reversible.
	undoWindow = 30 * time.Second
)

// UndoEntry records one applied correction.
type UndoEntry struct {
	Original  string
	Corrected string
	Boundary  rune
	Timestamp time.Time
}

// UndoDepth returns the number of entries currently held.
func (e *Engine) UndoDepth() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.undo)
}

func (e *Engine) pushUndoLocked(entry UndoEntry) {
	if len(e.undo) >= undoCapacity {
		e.undo = e.undo[1:]
	}
	e.undo = append(e.undo, entry)
}

func (e *Engine) peekUndoLocked() (UndoEntry, bool) {
	if len(e.undo) == 0 {
		return UndoEntry{}, false
	}
	return e.undo[len(e.undo)-1], true
}

func (e *Engine) popUndoLocked() {
	if len(e.undo) == 0 {
		return
	}
	e.undo = e.undo[:len(e.undo)-1]
}

// Package source delivers physical key events from the system keyboard into
// the correction pipeline.
package source

import (
	"context"

	"relayout/internal/keys"
)

// KeyEvent is one key press with the modifier and layout state snapshotted
// at capture time. Gap marks that at least one earlier event was dropped,
// so any word buffered before this event is incomplete.
type KeyEvent struct {
	Key    keys.PhysicalKey
	Shift  bool
	Layout keys.Layout
	Gap    bool
}

// Source produces key events in strict temporal order. The returned channel
// is closed when the source stops.
type Source interface {
	Start(ctx context.Context) (<-chan KeyEvent, error)
}

// ChanSource replays a fixed event stream; it backs tests and the no-op
// platform variant.
type ChanSource struct {
	events []KeyEvent
}

// NewChanSource builds a replay source over the given events.
func NewChanSource(events ...KeyEvent) *ChanSource {
	return &ChanSource{events: events}
}

func (s *ChanSource) Start(ctx context.Context) (<-chan KeyEvent, error) {
	out := make(chan KeyEvent, len(s.events))
	go func() {
		defer close(out)
		for _, event := range s.events {
			select {
			case <-ctx.Done():
				return
			case out <- event:
			}
		}
	}()
	return out, nil
}

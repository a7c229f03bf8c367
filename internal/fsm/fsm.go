// Package fsm defines the replacement engine's exclusivity state machine.
package fsm

import "fmt"

type State string

type Event string

const (
	// StateIdle is the only state a replacement or undo may begin from.
	StateIdle State = "idle"
	// StateReplacing marks a synthetic-output sequence in flight; all
	// incoming key events are suppressed while here.
	StateReplacing State = "replacing"
)

const (
	EventBegin  Event = "begin"
	EventFinish Event = "finish"
)

func Transition(current State, event Event) (State, error) {
	switch current {
	case StateIdle:
		switch event {
		case EventBegin:
			return StateReplacing, nil
		default:
			return current, invalidTransition(current, event)
		}
	case StateReplacing:
		switch event {
		case EventFinish:
			return StateIdle, nil
		default:
			return current, invalidTransition(current, event)
		}
	default:
		return current, fmt.Errorf("unknown state %q", current)
	}
}

func invalidTransition(state State, event Event) error {
	return fmt.Errorf("invalid transition: %s --(%s)--> ?", state, event)
}

package sections

import (
	"errors"
	"fmt"
)

// State is the phase of a reorder operation.
type State int32

const (
	StateIdle State = iota
	StateSwapping
	StatePersistingFirst
	StatePersistingSecond
	StateReconciling
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSwapping:
		return "swapping"
	case StatePersistingFirst:
		return "persisting_first"
	case StatePersistingSecond:
		return "persisting_second"
	case StateReconciling:
		return "reconciling"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

var ErrInvalidTransition = errors.New("invalid reorder state transition")

// A failed write in either persisting state moves straight to reconciling.
var transitions = map[State][]State{
	StateIdle:             {StateSwapping},
	StateSwapping:         {StatePersistingFirst},
	StatePersistingFirst:  {StatePersistingSecond, StateReconciling},
	StatePersistingSecond: {StateReconciling},
	StateReconciling:      {StateIdle},
}

func CanTransition(from, to State) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionHook observes every state change of a reorder. It runs on the
// goroutine performing the move.
type TransitionHook func(from, to State)

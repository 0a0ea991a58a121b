package domain

import "fmt"

// StateID identifies the gesture state the engine is in.
type StateID uint8

const (
	// StateIdle waits for a pointer-down. Text selection is allowed.
	StateIdle StateID = iota
	// StateUndecided has seen a pointer-down and is classifying the gesture.
	StateUndecided
	// StateReorder is an active drag-to-reorder.
	StateReorder
)

func (s StateID) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateUndecided:
		return "undecided"
	case StateReorder:
		return "reorder"
	default:
		return "unknown"
	}
}

// MarshalText renders the state by name so recorded results stay readable.
func (s StateID) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name written by MarshalText.
func (s *StateID) UnmarshalText(b []byte) error {
	switch string(b) {
	case "idle":
		*s = StateIdle
	case "undecided":
		*s = StateUndecided
	case "reorder":
		*s = StateReorder
	default:
		return fmt.Errorf("%w: %q", ErrUnknownState, b)
	}
	return nil
}

// AbortReason explains why a gesture was forced back to idle.
type AbortReason string

const (
	AbortCanceled      AbortReason = "canceled"
	AbortDetached      AbortReason = "detached"
	AbortMultiTouch    AbortReason = "multi-touch"
	AbortBlur          AbortReason = "blur"
	AbortFocusLost     AbortReason = "focus-lost"
	AbortSelection     AbortReason = "selection"
	AbortPointerLeft   AbortReason = "pointer-left"
	AbortScroll        AbortReason = "scroll"
	AbortPointerCancel AbortReason = "pointer-cancel"
)

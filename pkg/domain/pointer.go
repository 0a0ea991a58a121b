package domain

import "time"

// PointerKind is the phase of a pointer event.
type PointerKind string

const (
	PointerDown   PointerKind = "down"
	PointerMove   PointerKind = "move"
	PointerUp     PointerKind = "up"
	PointerLeave  PointerKind = "leave"
	PointerCancel PointerKind = "cancel"
)

// Source is the input device family.
type Source string

const (
	SourceMouse Source = "mouse"
	SourceTouch Source = "touch"
)

// PointerEvent is a normalized mouse or touch event.
type PointerEvent struct {
	Kind   PointerKind
	Source Source
	Point
	// Time defaults to the scheduler clock when zero.
	Time time.Time
	// Target is the element under the pointer. Only read on PointerDown.
	Target Element
	// Touches is the number of active touch points, 0 for mouse.
	Touches int
	// Button is the mouse button index, 0 being primary.
	Button int
}

package domain

import "errors"

// ErrNilContainer is returned when Attach is called without a container.
var ErrNilContainer = errors.New("container is nil")

// ErrAlreadyAttached is returned when an engine is attached twice.
var ErrAlreadyAttached = errors.New("engine already attached")

// ErrNotAttached is returned by operations that need an attached container.
var ErrNotAttached = errors.New("engine not attached")

// ErrTraceNotFound is returned when a trace ID cannot be found in the store.
var ErrTraceNotFound = errors.New("trace not found")

// ErrInvalidTrace is returned when a trace fails validation.
var ErrInvalidTrace = errors.New("invalid trace")

// ErrUnknownState is returned when a state name cannot be parsed.
var ErrUnknownState = errors.New("unknown gesture state")

// ErrUnsortedPositions is returned when sibling positions are not ascending.
var ErrUnsortedPositions = errors.New("sibling positions must be ascending")

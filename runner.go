package reorder

import (
	"context"
	"errors"
)

// ErrExternalScheduler is returned by Run when the engine was built with
// WithScheduler and the host owns the event loop.
var ErrExternalScheduler = errors.New("engine uses an external scheduler")

// Run drives the engine's own event loop until ctx is done. It is only
// needed when no scheduler was injected: timers, frames and work handed to
// Do all execute here, one at a time.
func (e *Engine) Run(ctx context.Context) error {
	if e.loop == nil {
		return ErrExternalScheduler
	}
	return e.loop.Run(ctx)
}

// Do runs fn on the engine's loop. Hosts that read input on another
// goroutine wrap Handle calls in Do. With an external scheduler fn runs
// immediately on the caller's goroutine.
func (e *Engine) Do(fn func()) bool {
	if e.loop == nil {
		fn()
		return true
	}
	return e.loop.Post(fn)
}

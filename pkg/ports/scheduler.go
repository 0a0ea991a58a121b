package ports

import (
	"time"

	"github.com/aretw0/reorder/pkg/domain"
)

// Timer is a pending one-shot callback.
type Timer interface {
	// Stop prevents the callback from running. It reports false if the
	// callback already ran or was already stopped.
	Stop() bool
}

// Scheduler runs callbacks on the goroutine that drives the engine.
// Implementations must never invoke a callback concurrently with engine calls.
type Scheduler interface {
	Now() time.Time
	AfterFunc(d time.Duration, fn func()) Timer
	// RequestFrame runs fn at the next animation-frame opportunity.
	RequestFrame(fn func())
}

// Animator moves an element to a transform over a duration.
type Animator interface {
	// Animate starts the animation and calls done once it settles.
	Animate(el domain.Element, to domain.Transform, d time.Duration, done func())
}

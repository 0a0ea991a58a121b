package domain

import "time"

// EventType defines the category of a lifecycle event.
type EventType string

const (
	EventStateEnter EventType = "state_enter"
	EventStateLeave EventType = "state_leave"
	EventIntent     EventType = "intent"
	EventAbort      EventType = "abort"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
}

// StateEvent reports a transition between gesture states.
type StateEvent struct {
	EventBase
	From       StateID `json:"from"`
	To         StateID `json:"to"`
	Generation uint64  `json:"generation"`
}

// IntentEvent reports an intent after every listener has seen it.
type IntentEvent struct {
	EventBase
	Intent    IntentType     `json:"intent"`
	Prevented bool           `json:"prevented"`
	Detail    *ReorderDetail `json:"detail,omitempty"`
}

// AbortEvent reports a gesture forced back to idle.
type AbortEvent struct {
	EventBase
	Reason AbortReason `json:"reason"`
	State  StateID     `json:"state"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously on the goroutine driving the engine.
type LifecycleHooks struct {
	OnStateEnter func(*StateEvent)
	OnStateLeave func(*StateEvent)
	OnIntent     func(*IntentEvent)
	OnAbort      func(*AbortEvent)
}

// MergeHooks combines several hook sets, calling them in order.
func MergeHooks(hooks ...LifecycleHooks) LifecycleHooks {
	var out LifecycleHooks
	for _, h := range hooks {
		out.OnStateEnter = chain(out.OnStateEnter, h.OnStateEnter)
		out.OnStateLeave = chain(out.OnStateLeave, h.OnStateLeave)
		out.OnIntent = chain(out.OnIntent, h.OnIntent)
		out.OnAbort = chain(out.OnAbort, h.OnAbort)
	}
	return out
}

func chain[T any](a, b func(T)) func(T) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(v T) {
		a(v)
		b(v)
	}
}

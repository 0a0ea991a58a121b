// Package gateway delivers engine intents to host listeners.
//
// The Bus is synchronous: Dispatch returns only after every listener ran, so
// a listener's PreventDefault is visible to the engine immediately. Listeners
// may call back into the engine (for example to cancel the gesture).
package gateway

import (
	"sync"

	"github.com/aretw0/reorder/pkg/domain"
)

// Listener reacts to an intent. Calling intent.PreventDefault vetoes it.
type Listener func(intent *domain.Intent)

type entry struct {
	id uint64
	fn Listener
}

// Bus manages intent listeners keyed by intent type.
type Bus struct {
	mu        sync.RWMutex
	next      uint64
	listeners map[domain.IntentType][]entry
	catchAll  []entry
}

// New creates an empty bus.
func New() *Bus {
	return &Bus{
		listeners: make(map[domain.IntentType][]entry),
	}
}

// On registers fn for one intent type and returns a function that removes it.
func (b *Bus) On(t domain.IntentType, fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.listeners[t] = append(b.listeners[t], entry{id: id, fn: fn})
	return func() { b.remove(t, id) }
}

// OnAny registers fn for every intent type.
func (b *Bus) OnAny(fn Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.next++
	id := b.next
	b.catchAll = append(b.catchAll, entry{id: id, fn: fn})
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.catchAll = without(b.catchAll, id)
	}
}

func (b *Bus) remove(t domain.IntentType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[t] = without(b.listeners[t], id)
}

func without(entries []entry, id uint64) []entry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.id != id {
			out = append(out, e)
		}
	}
	return out
}

// Dispatch runs the typed listeners in registration order, then the catch-all
// ones. The listener set is captured up front, so listeners may subscribe or
// unsubscribe while dispatching.
func (b *Bus) Dispatch(intent *domain.Intent) bool {
	b.mu.RLock()
	typed := b.listeners[intent.Type]
	snapshot := make([]entry, 0, len(typed)+len(b.catchAll))
	snapshot = append(snapshot, typed...)
	snapshot = append(snapshot, b.catchAll...)
	b.mu.RUnlock()

	for _, e := range snapshot {
		e.fn(intent)
	}
	return intent.DefaultPrevented()
}

// Len returns the number of registered listeners.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := len(b.catchAll)
	for _, l := range b.listeners {
		n += len(l)
	}
	return n
}

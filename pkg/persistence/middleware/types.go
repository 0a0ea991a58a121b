package middleware

import "github.com/aretw0/reorder/pkg/ports"

// Middleware allows wrapping a TraceStore to add behavior.
type Middleware func(ports.TraceStore) ports.TraceStore

// Wrap applies mws to store. The first middleware sees calls first.
func Wrap(store ports.TraceStore, mws ...Middleware) ports.TraceStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}

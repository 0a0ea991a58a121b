package ports

import "github.com/aretw0/reorder/pkg/domain"

// Dispatcher delivers intents to the host's listeners.
// Listeners run synchronously and may re-enter the engine.
type Dispatcher interface {
	// Dispatch runs every listener for the intent and reports whether any vetoed it.
	Dispatch(intent *domain.Intent) (prevented bool)
}

package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
)

// DefaultSettle is how long the clock keeps running after the last event so
// pending timers and the drop animation finish.
const DefaultSettle = time.Second

// DefaultWidth is the viewport width used when a trace omits it.
const DefaultWidth = 320.0

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithConfig sets the engine thresholds used for replays.
func WithConfig(cfg domain.Config) Option {
	return func(r *Runner) {
		r.Config = cfg
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.Logger = logger
	}
}

// WithLifecycleHooks adds hooks to every replayed engine, e.g. metrics.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.Hooks = hooks
	}
}

// WithStore configures the TraceStore used by RunStored.
func WithStore(store ports.TraceStore) Option {
	return func(r *Runner) {
		r.Store = store
	}
}

// WithSettle overrides DefaultSettle.
func WithSettle(d time.Duration) Option {
	return func(r *Runner) {
		r.Settle = d
	}
}

package reorder

import (
	"io"
	"log/slog"

	"github.com/aretw0/reorder/internal/clock"
	"github.com/aretw0/reorder/internal/runtime"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/gateway"
	"github.com/aretw0/reorder/pkg/ports"
)

// Engine is the high-level entry point for the reorder library.
// It wraps the internal state machine and owns the intent bus listeners
// subscribe to.
type Engine struct {
	runtime    *runtime.Engine
	bus        *gateway.Bus
	dispatcher ports.Dispatcher
	scheduler  ports.Scheduler
	animator   ports.Animator
	loop       *clock.Loop
	hooks      domain.LifecycleHooks
	logger     *slog.Logger
	cfg        domain.Config
	Name       string
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConfig replaces the default thresholds.
func WithConfig(cfg domain.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithScheduler injects the host's timer and frame source. Callbacks must run
// on the goroutine that calls Handle. Without it the engine runs its own loop,
// see Run.
func WithScheduler(s ports.Scheduler) Option {
	return func(e *Engine) {
		e.scheduler = s
	}
}

// WithAnimator overrides the drop animation.
func WithAnimator(a ports.Animator) Option {
	return func(e *Engine) {
		e.animator = a
	}
}

// WithDispatcher adds a dispatcher that sees every intent after the bus listeners.
func WithDispatcher(d ports.Dispatcher) Option {
	return func(e *Engine) {
		e.dispatcher = d
	}
}

// WithName labels the engine in logs.
func WithName(name string) Option {
	return func(e *Engine) {
		e.Name = name
	}
}

// New creates an idle, unattached engine.
func New(opts ...Option) *Engine {
	eng := &Engine{
		cfg:  domain.DefaultConfig(),
		bus:  gateway.New(),
		Name: "list",
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	eng.logger = eng.logger.With("list", eng.Name)

	if eng.scheduler == nil {
		eng.loop = clock.NewLoop(64)
		eng.scheduler = eng.loop.Scheduler()
	}

	var dispatcher ports.Dispatcher = eng.bus
	if eng.dispatcher != nil {
		dispatcher = fanout{eng.bus, eng.dispatcher}
	}

	rtOpts := []runtime.EngineOption{
		runtime.WithConfig(eng.cfg),
		runtime.WithLogger(eng.logger),
		runtime.WithLifecycleHooks(eng.hooks),
	}
	if eng.animator != nil {
		rtOpts = append(rtOpts, runtime.WithAnimator(eng.animator))
	}
	eng.runtime = runtime.NewEngine(eng.scheduler, dispatcher, rtOpts...)
	return eng
}

// fanout forwards an intent to several dispatchers. Any veto wins.
type fanout []ports.Dispatcher

func (f fanout) Dispatch(intent *domain.Intent) bool {
	prevented := false
	for _, d := range f {
		if d.Dispatch(intent) {
			prevented = true
		}
	}
	return prevented || intent.DefaultPrevented()
}

// Attach starts classifying gestures on the container's children.
func (e *Engine) Attach(c domain.Container) error {
	return e.runtime.Attach(c)
}

// Detach force-cancels any gesture and stops listening.
func (e *Engine) Detach() {
	e.runtime.Detach()
}

// Cancel forces the engine back to idle. Safe to call from listeners and
// safe to call repeatedly.
func (e *Engine) Cancel() {
	e.runtime.Cancel()
}

// State returns the current gesture state.
func (e *Engine) State() domain.StateID {
	return e.runtime.State()
}

// Handle feeds one pointer event and reports whether the host should
// suppress the event's default action.
func (e *Engine) Handle(ev domain.PointerEvent) bool {
	return e.runtime.Handle(ev)
}

// HandleBlur reports that the window lost focus.
func (e *Engine) HandleBlur() {
	e.runtime.HandleBlur()
}

// HandleFocusChange reports that focus moved to el, nil meaning nowhere.
func (e *Engine) HandleFocusChange(el domain.Element) {
	e.runtime.HandleFocusChange(el)
}

// HandleSelectionChange reports that the text selection changed.
func (e *Engine) HandleSelectionChange() {
	e.runtime.HandleSelectionChange()
}

// On subscribes to one intent type and returns an unsubscribe function.
func (e *Engine) On(t domain.IntentType, fn gateway.Listener) func() {
	return e.bus.On(t, fn)
}

// Gateway exposes the intent bus.
func (e *Engine) Gateway() *gateway.Bus {
	return e.bus
}

// Velocity returns the pointer velocity of the current gesture in px/s.
func (e *Engine) Velocity() domain.Velocity {
	return e.runtime.Velocity()
}

// Config returns the thresholds in use.
func (e *Engine) Config() domain.Config {
	return e.cfg
}

// Logger returns the engine's logger.
func (e *Engine) Logger() *slog.Logger {
	return e.logger
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() domain.Config {
	return domain.DefaultConfig()
}

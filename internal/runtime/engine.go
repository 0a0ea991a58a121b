package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
)

// Engine is the gesture state machine. It classifies pointer input on the
// children of one container as tap, scroll or drag-to-reorder.
//
// An Engine is driven from a single goroutine: input handlers, scheduler
// callbacks and listener re-entry all happen on it. It holds no lock, since
// listeners are allowed to call back in while a transition is running.
type Engine struct {
	cfg        domain.Config
	logger     *slog.Logger
	hooks      domain.LifecycleHooks
	sched      ports.Scheduler
	animator   ports.Animator
	dispatcher ports.Dispatcher

	container domain.Container

	state      domain.StateID
	generation uint64
	session    *session

	usingTouch          bool
	canPreventScrolling bool
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithConfig replaces the default thresholds.
func WithConfig(cfg domain.Config) EngineOption {
	return func(e *Engine) { e.cfg = cfg }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) { e.logger = logger }
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) { e.hooks = hooks }
}

// WithAnimator overrides the drop animator.
func WithAnimator(a ports.Animator) EngineOption {
	return func(e *Engine) { e.animator = a }
}

// NewEngine creates an idle engine bound to a scheduler and a dispatcher.
func NewEngine(sched ports.Scheduler, dispatcher ports.Dispatcher, opts ...EngineOption) *Engine {
	e := &Engine{
		cfg:        domain.DefaultConfig(),
		sched:      sched,
		dispatcher: dispatcher,
		state:      domain.StateIdle,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.animator == nil {
		e.animator = NewTimedAnimator(sched)
	}
	return e
}

// Attach binds the engine to a container.
func (e *Engine) Attach(c domain.Container) error {
	if c == nil {
		return domain.ErrNilContainer
	}
	if e.container != nil {
		return domain.ErrAlreadyAttached
	}
	e.container = c
	e.logger.Debug("attached")
	return nil
}

// Detach cancels any gesture and unbinds the container.
func (e *Engine) Detach() {
	if e.container == nil {
		return
	}
	e.abort(domain.AbortDetached)
	e.container = nil
	e.logger.Debug("detached")
}

// Attached reports whether a container is bound.
func (e *Engine) Attached() bool { return e.container != nil }

// State returns the current gesture state.
func (e *Engine) State() domain.StateID { return e.state }

// Generation increases on every state change.
func (e *Engine) Generation() uint64 { return e.generation }

// Config returns the active thresholds.
func (e *Engine) Config() domain.Config { return e.cfg }

// Cancel forces the engine back to idle. It is idempotent.
func (e *Engine) Cancel() {
	e.abort(domain.AbortCanceled)
}

// Velocity returns the pointer velocity of the current gesture.
func (e *Engine) Velocity() domain.Velocity {
	if e.session == nil {
		return domain.Velocity{}
	}
	return e.session.pos.velocity()
}

// abort returns to idle, reporting why. Does nothing when already idle.
func (e *Engine) abort(reason domain.AbortReason) {
	if e.state == domain.StateIdle {
		return
	}
	e.logger.Debug("gesture aborted", "reason", reason, "state", e.state)
	if e.hooks.OnAbort != nil {
		e.hooks.OnAbort(&domain.AbortEvent{
			EventBase: domain.EventBase{Timestamp: e.sched.Now(), Type: domain.EventAbort},
			Reason:    reason,
			State:     e.state,
		})
	}
	e.transition(domain.StateIdle)
}

// transition moves to the target state. The new state is published before
// the old state's exit runs, so callbacks fired from exit or enter see it.
// A transition started from inside exit or enter supersedes this one: the
// generation moves on and this call stops without touching the state again.
func (e *Engine) transition(to domain.StateID) {
	from := e.state
	if from == to {
		return
	}
	e.generation++
	gen := e.generation
	e.state = to

	if exit := stateTable[from].exit; exit != nil {
		exit(e, to)
	}
	if e.hooks.OnStateLeave != nil {
		e.hooks.OnStateLeave(e.stateEvent(domain.EventStateLeave, from, to, gen))
	}
	if e.generation != gen {
		return
	}

	e.logger.Debug("state change", "from", from, "to", to, "generation", gen)
	if enter := stateTable[to].enter; enter != nil {
		enter(e, gen)
	}
	if e.generation != gen {
		return
	}
	if e.hooks.OnStateEnter != nil {
		e.hooks.OnStateEnter(e.stateEvent(domain.EventStateEnter, from, to, gen))
	}
}

func (e *Engine) stateEvent(t domain.EventType, from, to domain.StateID, gen uint64) *domain.StateEvent {
	return &domain.StateEvent{
		EventBase:  domain.EventBase{Timestamp: e.sched.Now(), Type: t},
		From:       from,
		To:         to,
		Generation: gen,
	}
}

// dispatch publishes an intent and reports whether a listener vetoed it.
func (e *Engine) dispatch(intent *domain.Intent) bool {
	prevented := false
	if e.dispatcher != nil {
		prevented = e.dispatcher.Dispatch(intent)
	}
	e.logger.Debug("intent", "type", intent.Type, "prevented", prevented)
	if e.hooks.OnIntent != nil {
		e.hooks.OnIntent(&domain.IntentEvent{
			EventBase: domain.EventBase{Timestamp: e.sched.Now(), Type: domain.EventIntent},
			Intent:    intent.Type,
			Prevented: prevented,
			Detail:    intent.Detail,
		})
	}
	return prevented
}

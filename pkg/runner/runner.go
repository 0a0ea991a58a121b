package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/reorder"
	"github.com/aretw0/reorder/internal/clock"
	"github.com/aretw0/reorder/internal/dom"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
)

// ErrNoStore is returned by RunStored when the runner has no TraceStore.
var ErrNoStore = errors.New("runner has no trace store")

// Runner replays traces. It is safe for concurrent use: every Run builds its
// own engine, clock and list.
type Runner struct {
	Config domain.Config
	Logger *slog.Logger
	Hooks  domain.LifecycleHooks
	Store  ports.TraceStore
	Settle time.Duration
}

// New creates a Runner with default thresholds.
func New(opts ...Option) *Runner {
	r := &Runner{
		Config: domain.DefaultConfig(),
		Settle: DefaultSettle,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// RunStored loads a trace from the store and replays it.
func (r *Runner) RunStored(ctx context.Context, id string) (*Result, error) {
	if r.Store == nil {
		return nil, ErrNoStore
	}
	tr, err := r.Store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.Run(ctx, tr)
}

// Run replays tr and classifies the gesture.
func (r *Runner) Run(ctx context.Context, tr *domain.Trace) (*Result, error) {
	if err := tr.Validate(); err != nil {
		return nil, err
	}

	start := tr.CreatedAt
	if start.IsZero() {
		start = time.Unix(0, 0).UTC()
	}
	clk := clock.NewManual(start)
	width := tr.Layout.Width
	if width <= 0 {
		width = DefaultWidth
	}
	doc := dom.NewDocument(width, tr.Layout.ViewportHeight)
	list := doc.NewList(tr.Layout.ListTop, tr.Layout.ListHeight)
	for _, it := range tr.Items {
		list.AppendWithMargins(it.ID, it.Height, it.MarginTop, it.MarginBottom)
	}

	res := &Result{TraceID: tr.ID, Name: SanitizeLabel(tr.Name)}
	eng := reorder.New(
		reorder.WithName(tr.ID),
		reorder.WithConfig(r.Config),
		reorder.WithScheduler(clk),
		reorder.WithLogger(r.Logger),
		reorder.WithLifecycleHooks(domain.MergeHooks(res.hooks(), r.Hooks)),
	)
	if err := eng.Attach(list); err != nil {
		return nil, fmt.Errorf("attach: %w", err)
	}
	defer eng.Detach()
	doc.OnFocusChange(eng.HandleFocusChange)

	policy := tr.Listeners
	veto := func(on bool) func(*domain.Intent) {
		return func(i *domain.Intent) {
			if on {
				i.PreventDefault()
			}
		}
	}
	eng.On(domain.IntentBeforeWait, veto(policy.PreventBeforeWait))
	eng.On(domain.IntentBeforeReorder, veto(policy.PreventBeforeReorder))
	eng.On(domain.IntentTap, veto(policy.PreventTap))
	eng.On(domain.IntentReorder, func(i *domain.Intent) {
		if node, ok := i.Target.(*dom.Item); ok {
			res.Moved = node.ID()
		}
		if policy.KeepOrder {
			return
		}
		if err := list.MoveBefore(i.Target, i.InsertBefore); err != nil {
			r.Logger.Warn("reorder not applied", "trace", tr.ID, "err", err)
		}
	})

	for _, ev := range tr.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		clk.AdvanceTo(start.Add(ev.At()))
		prevented := deliver(eng, list, ev)
		clk.RunFrames()
		res.Steps = append(res.Steps, Step{
			AtMS:      ev.AtMS,
			Kind:      ev.Kind,
			State:     eng.State(),
			Prevented: prevented,
		})
		if ev.Kind == domain.TraceMove {
			res.Velocity = eng.Velocity()
		}
	}
	clk.Advance(r.Settle)

	res.FinalState = eng.State()
	res.Order = list.Order()
	res.ScrollTop = scrollTopOf(list, doc)
	res.Outcome = res.classify()
	r.Logger.Debug("trace replayed", "trace", tr.ID, "outcome", res.Outcome, "events", len(tr.Events))
	return res, nil
}

// deliver feeds one trace event to the engine.
func deliver(eng *reorder.Engine, list *dom.List, ev domain.TraceEvent) bool {
	switch ev.Kind {
	case domain.TraceBlur:
		eng.HandleBlur()
		return false
	case domain.TraceSelection:
		eng.HandleSelectionChange()
		return false
	case domain.TraceAbort:
		eng.Cancel()
		return false
	}

	pe := domain.PointerEvent{
		Kind:    domain.PointerKind(ev.Kind),
		Source:  ev.Source,
		Point:   domain.Point{X: ev.X, Y: ev.Y},
		Touches: ev.Touches,
		Button:  ev.Button,
	}
	if pe.Source == "" {
		pe.Source = domain.SourceMouse
	}
	if pe.Source == domain.SourceTouch && pe.Touches == 0 && ev.Kind != domain.TraceUp {
		pe.Touches = 1
	}
	if ev.Kind == domain.TraceDown {
		pe.Target = list
		if it := pickTarget(list, ev); it != nil {
			pe.Target = it
		}
	}
	return eng.Handle(pe)
}

func pickTarget(list *dom.List, ev domain.TraceEvent) *dom.Item {
	if ev.Item != "" {
		return list.Item(ev.Item)
	}
	return list.ElementAt(domain.Point{X: ev.X, Y: ev.Y})
}

func scrollTopOf(list *dom.List, doc *dom.Document) float64 {
	if list.Scrollable() {
		return list.ScrollTop()
	}
	return doc.Body().ScrollTop()
}

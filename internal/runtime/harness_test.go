package runtime_test

import (
	"testing"
	"time"

	"github.com/aretw0/reorder/internal/clock"
	"github.com/aretw0/reorder/internal/dom"
	"github.com/aretw0/reorder/internal/runtime"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/gateway"
	"github.com/stretchr/testify/require"
)

const rowHeight = 50.0

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// harness wires an engine to an in-memory list of equal-height rows.
type harness struct {
	t      *testing.T
	clock  *clock.Manual
	doc    *dom.Document
	list   *dom.List
	bus    *gateway.Bus
	engine *runtime.Engine

	intents []*domain.Intent
	aborts  []domain.AbortReason
	entered []domain.StateID
}

type fixture struct {
	rows       int
	listHeight float64
	cfg        *domain.Config
}

func newHarness(t *testing.T, f fixture) *harness {
	t.Helper()
	if f.rows == 0 {
		f.rows = 5
	}
	h := &harness{
		t:     t,
		clock: clock.NewManual(epoch),
		doc:   dom.NewDocument(320, 1000),
		bus:   gateway.New(),
	}
	h.list = h.doc.NewList(0, f.listHeight)
	for i := 0; i < f.rows; i++ {
		h.list.Append(string(rune('a'+i)), rowHeight)
	}

	cfg := domain.DefaultConfig()
	if f.cfg != nil {
		cfg = *f.cfg
	}
	hooks := domain.LifecycleHooks{
		OnAbort:      func(e *domain.AbortEvent) { h.aborts = append(h.aborts, e.Reason) },
		OnStateEnter: func(e *domain.StateEvent) { h.entered = append(h.entered, e.To) },
	}
	h.engine = runtime.NewEngine(h.clock, h.bus, runtime.WithConfig(cfg), runtime.WithLifecycleHooks(hooks))
	require.NoError(t, h.engine.Attach(h.list))
	h.doc.OnFocusChange(h.engine.HandleFocusChange)
	h.bus.OnAny(func(i *domain.Intent) { h.intents = append(h.intents, i) })
	return h
}

func (h *harness) item(id string) *dom.Item {
	it := h.list.Item(id)
	require.NotNil(h.t, it, "no item %q", id)
	return it
}

// center returns the vertical center of an item in viewport coordinates.
func (h *harness) center(id string) float64 {
	r := h.item(id).ClientRect()
	return r.Top + r.Height/2
}

func (h *harness) down(id string) bool {
	return h.engine.Handle(domain.PointerEvent{
		Kind:   domain.PointerDown,
		Source: domain.SourceMouse,
		Point:  domain.Point{X: 10, Y: h.center(id)},
		Target: h.item(id),
	})
}

func (h *harness) touchDown(id string, touches int) bool {
	return h.engine.Handle(domain.PointerEvent{
		Kind:    domain.PointerDown,
		Source:  domain.SourceTouch,
		Point:   domain.Point{X: 10, Y: h.center(id)},
		Target:  h.item(id),
		Touches: touches,
	})
}

func (h *harness) move(x, y float64) bool {
	return h.engine.Handle(domain.PointerEvent{Kind: domain.PointerMove, Source: domain.SourceMouse, Point: domain.Point{X: x, Y: y}})
}

func (h *harness) touchMove(x, y float64) bool {
	return h.engine.Handle(domain.PointerEvent{Kind: domain.PointerMove, Source: domain.SourceTouch, Point: domain.Point{X: x, Y: y}, Touches: 1})
}

func (h *harness) up() bool {
	return h.engine.Handle(domain.PointerEvent{Kind: domain.PointerUp, Source: domain.SourceMouse})
}

func (h *harness) touchUp() bool {
	return h.engine.Handle(domain.PointerEvent{Kind: domain.PointerUp, Source: domain.SourceTouch})
}

func (h *harness) leave() bool {
	return h.engine.Handle(domain.PointerEvent{Kind: domain.PointerLeave, Source: domain.SourceMouse})
}

// pickUp presses on an item and waits out the hold delay.
func (h *harness) pickUp(id string) {
	h.t.Helper()
	h.down(id)
	h.clock.Advance(h.engine.Config().HoldDelay)
	require.Equal(h.t, domain.StateReorder, h.engine.State())
}

func (h *harness) types() []domain.IntentType {
	var out []domain.IntentType
	for _, i := range h.intents {
		out = append(out, i.Type)
	}
	return out
}

func (h *harness) last(t domain.IntentType) *domain.Intent {
	for i := len(h.intents) - 1; i >= 0; i-- {
		if h.intents[i].Type == t {
			return h.intents[i]
		}
	}
	return nil
}

package dsl

import (
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/reorder/pkg/domain"
)

// DefaultX is the horizontal pointer position used by Down.
const DefaultX = 10.0

// Builder manages the trace construction. Errors are collected and
// reported by Build.
type Builder struct {
	trace  domain.Trace
	source domain.Source
	at     time.Duration
	x, y   float64
	errs   []error
}

// New starts a trace with id.
func New(id string) *Builder {
	return &Builder{
		trace:  domain.Trace{ID: id},
		source: domain.SourceMouse,
	}
}

// Name sets the human-readable description.
func (b *Builder) Name(name string) *Builder {
	b.trace.Name = name
	return b
}

// Viewport sets the visible height.
func (b *Builder) Viewport(height float64) *Builder {
	b.trace.Layout.ViewportHeight = height
	return b
}

// ListTop places the list below the top of the document.
func (b *Builder) ListTop(top float64) *Builder {
	b.trace.Layout.ListTop = top
	return b
}

// Scrollable bounds the list to height, making it its own scroll container.
func (b *Builder) Scrollable(height float64) *Builder {
	b.trace.Layout.ListHeight = height
	return b
}

// Item appends one list item.
func (b *Builder) Item(id string, height float64) *Builder {
	b.trace.Items = append(b.trace.Items, domain.ItemSpec{ID: id, Height: height})
	return b
}

// Items appends items that share a height.
func (b *Builder) Items(height float64, ids ...string) *Builder {
	for _, id := range ids {
		b.Item(id, height)
	}
	return b
}

// Listeners sets which intents the replay host vetoes.
func (b *Builder) Listeners(p domain.ListenerPolicy) *Builder {
	b.trace.Listeners = p
	return b
}

// Touch switches the following pointer events to touch input.
func (b *Builder) Touch() *Builder {
	b.source = domain.SourceTouch
	return b
}

// Mouse switches the following pointer events to mouse input.
func (b *Builder) Mouse() *Builder {
	b.source = domain.SourceMouse
	return b
}

// Center returns the vertical center of item id in document coordinates.
func (b *Builder) Center(id string) (float64, bool) {
	top := b.trace.Layout.ListTop
	for _, it := range b.trace.Items {
		top += it.MarginTop
		if it.ID == id {
			return top + it.Height/2, true
		}
		top += it.Height + it.MarginBottom
	}
	return 0, false
}

// Down presses the center of item id.
func (b *Builder) Down(id string) *Builder {
	y, ok := b.Center(id)
	if !ok {
		b.errs = append(b.errs, fmt.Errorf("down on unknown item %q", id))
		return b
	}
	b.x, b.y = DefaultX, y
	return b.pointer(domain.TraceDown, id)
}

// DownAt presses at a point and lets the replay hit-test the target.
func (b *Builder) DownAt(x, y float64) *Builder {
	b.x, b.y = x, y
	return b.pointer(domain.TraceDown, "")
}

// Wait advances the clock.
func (b *Builder) Wait(d time.Duration) *Builder {
	if d < 0 {
		b.errs = append(b.errs, fmt.Errorf("negative wait %v", d))
		return b
	}
	b.at += d
	return b
}

// MoveTo moves the pointer to a point.
func (b *Builder) MoveTo(x, y float64) *Builder {
	b.x, b.y = x, y
	return b.pointer(domain.TraceMove, "")
}

// MoveBy moves the pointer relative to its last position.
func (b *Builder) MoveBy(dx, dy float64) *Builder {
	return b.MoveTo(b.x+dx, b.y+dy)
}

// Up releases the pointer where it is.
func (b *Builder) Up() *Builder {
	return b.pointer(domain.TraceUp, "")
}

// Leave records the pointer leaving the list.
func (b *Builder) Leave() *Builder {
	return b.pointer(domain.TraceLeave, "")
}

// Cancel records a pointer cancel.
func (b *Builder) Cancel() *Builder {
	return b.pointer(domain.TraceCancel, "")
}

// SecondTouch records a move with two fingers down.
func (b *Builder) SecondTouch() *Builder {
	b.add(domain.TraceEvent{Kind: domain.TraceMove, Source: domain.SourceTouch, X: b.x, Y: b.y, Touches: 2})
	return b
}

// Blur records the window losing focus.
func (b *Builder) Blur() *Builder {
	b.add(domain.TraceEvent{Kind: domain.TraceBlur})
	return b
}

// Selection records a text selection change.
func (b *Builder) Selection() *Builder {
	b.add(domain.TraceEvent{Kind: domain.TraceSelection})
	return b
}

// Abort records the host cancelling the gesture.
func (b *Builder) Abort() *Builder {
	b.add(domain.TraceEvent{Kind: domain.TraceAbort})
	return b
}

func (b *Builder) pointer(kind domain.TraceEventKind, item string) *Builder {
	ev := domain.TraceEvent{Kind: kind, Source: b.source, X: b.x, Y: b.y, Item: item}
	if b.source == domain.SourceTouch && kind != domain.TraceUp {
		ev.Touches = 1
	}
	b.add(ev)
	return b
}

func (b *Builder) add(ev domain.TraceEvent) {
	ev.AtMS = b.at.Milliseconds()
	b.trace.Events = append(b.trace.Events, ev)
}

// Build returns a validated copy of the trace.
func (b *Builder) Build() (*domain.Trace, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidTrace, err)
	}
	tr := b.trace.Clone()
	if err := tr.Validate(); err != nil {
		return nil, err
	}
	return tr, nil
}

// MustBuild is Build for fixed traces in tests and examples.
func (b *Builder) MustBuild() *domain.Trace {
	tr, err := b.Build()
	if err != nil {
		panic(err)
	}
	return tr
}

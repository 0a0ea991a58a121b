package dom

import (
	"math"

	"github.com/aretw0/reorder/pkg/domain"
)

// Document is the viewport plus its scrolling body.
type Document struct {
	height  float64
	width   float64
	body    *Body
	focused domain.Element
	onFocus []func(domain.Element)
}

// NewDocument creates a document with the given viewport size.
func NewDocument(width, height float64) *Document {
	d := &Document{width: width, height: height}
	d.body = &Body{doc: d}
	return d
}

// Height implements domain.Viewport.
func (d *Document) Height() float64 { return d.height }

// Width returns the viewport width.
func (d *Document) Width() float64 { return d.width }

// Resize changes the viewport size.
func (d *Document) Resize(width, height float64) {
	d.width, d.height = width, height
	d.body.SetScrollTop(d.body.scrollTop)
}

// ScrollingElement implements domain.Viewport.
func (d *Document) ScrollingElement() domain.Scroller { return d.body }

// Body returns the document body.
func (d *Document) Body() *Body { return d.body }

// Focused returns the focused element, or nil.
func (d *Document) Focused() domain.Element { return d.focused }

// OnFocusChange registers fn to run whenever focus moves.
func (d *Document) OnFocusChange(fn func(domain.Element)) {
	d.onFocus = append(d.onFocus, fn)
}

// Blur clears focus.
func (d *Document) Blur() { d.setFocus(nil) }

func (d *Document) setFocus(el domain.Element) {
	if d.focused == el {
		return
	}
	d.focused = el
	for _, fn := range d.onFocus {
		fn(el)
	}
}

// NewList appends a list to the body at document offset top. A positive
// clientHeight makes the list its own scroll container.
func (d *Document) NewList(top, clientHeight float64) *List {
	l := &List{
		doc:          d,
		top:          top,
		clientHeight: clientHeight,
		style:        newStyle(),
	}
	d.body.lists = append(d.body.lists, l)
	return l
}

// Body is the document's scrolling element.
type Body struct {
	doc       *Document
	scrollTop float64
	lists     []*List
}

func (b *Body) Parent() domain.Element              { return nil }
func (b *Body) IsElement() bool                     { return true }
func (b *Body) Layout() domain.Box                  { return domain.Box{Height: b.ScrollHeight()} }
func (b *Body) Transform() domain.Transform         { return domain.Transform{} }
func (b *Body) SetTransform(domain.Transform)       {}
func (b *Body) SetProperty(domain.Property, string) {}
func (b *Body) AddClass(string)                     {}
func (b *Body) RemoveClass(string)                  {}
func (b *Body) Focus()                              { b.doc.setFocus(b) }

// ClientRect covers the whole viewport.
func (b *Body) ClientRect() domain.Rect {
	return domain.Rect{Width: b.doc.width, Height: b.doc.height}
}

func (b *Body) ScrollTop() float64 { return b.scrollTop }

// SetScrollTop clamps to the scrollable range.
func (b *Body) SetScrollTop(v float64) {
	b.scrollTop = clamp(v, 0, math.Max(0, b.ScrollHeight()-b.ClientHeight()))
}

// ScrollHeight is the taller of the viewport and the lowest list bottom.
func (b *Body) ScrollHeight() float64 {
	h := b.doc.height
	for _, l := range b.lists {
		h = math.Max(h, l.top+l.outerHeight())
	}
	return h
}

func (b *Body) ClientHeight() float64 { return b.doc.height }

// Scrollable is false: the body is reached through the viewport fallback,
// not through the ancestor walk.
func (b *Body) Scrollable() bool { return false }

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

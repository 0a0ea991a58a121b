package dom

import (
	"fmt"
	"math"

	"github.com/aretw0/reorder/pkg/domain"
)

// List is a vertical container of items. It implements domain.Container and,
// when given a client height, domain.Scroller.
type List struct {
	style
	doc          *Document
	top          float64
	clientHeight float64
	scrollTop    float64
	children     []domain.Element
}

// Append adds an item of the given height at the end of the list.
func (l *List) Append(id string, height float64) *Item {
	return l.AppendWithMargins(id, height, 0, 0)
}

// AppendWithMargins adds an item with vertical margins.
func (l *List) AppendWithMargins(id string, height, marginTop, marginBottom float64) *Item {
	it := &Item{
		style:        newStyle(),
		list:         l,
		id:           id,
		height:       height,
		marginTop:    marginTop,
		marginBottom: marginBottom,
	}
	l.children = append(l.children, it)
	return it
}

// AppendText adds a non-element child, such as whitespace between items.
func (l *List) AppendText() *Text {
	t := &Text{list: l}
	l.children = append(l.children, t)
	return t
}

// Children implements domain.Container.
func (l *List) Children() []domain.Element {
	out := make([]domain.Element, len(l.children))
	copy(out, l.children)
	return out
}

// Viewport implements domain.Container.
func (l *List) Viewport() domain.Viewport { return l.doc }

// Document returns the owning document.
func (l *List) Document() *Document { return l.doc }

// Items returns the element children in order.
func (l *List) Items() []*Item {
	var out []*Item
	for _, c := range l.children {
		if it, ok := c.(*Item); ok {
			out = append(out, it)
		}
	}
	return out
}

// Item returns the item with the given id, or nil.
func (l *List) Item(id string) *Item {
	for _, it := range l.Items() {
		if it.id == id {
			return it
		}
	}
	return nil
}

// Order returns the item ids in document order.
func (l *List) Order() []string {
	items := l.Items()
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.id
	}
	return out
}

// MoveBefore moves node so it precedes before. A nil before moves it to the end.
func (l *List) MoveBefore(node, before domain.Element) error {
	from := l.indexOf(node)
	if from < 0 {
		return fmt.Errorf("move: node is not a child of this list")
	}
	if node == before {
		return nil
	}
	rest := append(l.children[:from:from], l.children[from+1:]...)
	at := len(rest)
	if before != nil {
		at = -1
		for i, c := range rest {
			if c == before {
				at = i
				break
			}
		}
		if at < 0 {
			return fmt.Errorf("move: reference node is not a child of this list")
		}
	}
	out := make([]domain.Element, 0, len(l.children))
	out = append(out, rest[:at]...)
	out = append(out, node)
	out = append(out, rest[at:]...)
	l.children = out
	return nil
}

func (l *List) indexOf(node domain.Element) int {
	for i, c := range l.children {
		if c == node {
			return i
		}
	}
	return -1
}

// ElementAt returns the item whose client rect contains p, or nil.
func (l *List) ElementAt(p domain.Point) *Item {
	for _, it := range l.Items() {
		if it.ClientRect().Contains(p) {
			return it
		}
	}
	return nil
}

// layoutOf runs block flow with collapsing margins down to target.
func (l *List) layoutOf(target *Item) domain.Box {
	var top, prevBottom float64
	first := true
	for _, c := range l.children {
		it, ok := c.(*Item)
		if !ok {
			continue
		}
		gap := it.marginTop
		if !first {
			gap = math.Max(prevBottom, it.marginTop)
		}
		top += gap
		if it == target {
			return domain.Box{
				Top:          top,
				Height:       it.height,
				MarginTop:    it.marginTop,
				MarginBottom: it.marginBottom,
			}
		}
		top += it.height
		prevBottom = it.marginBottom
		first = false
	}
	return domain.Box{}
}

// ContentHeight is the height of the laid-out items, trailing margin included.
func (l *List) ContentHeight() float64 {
	items := l.Items()
	if len(items) == 0 {
		return 0
	}
	last := items[len(items)-1]
	b := l.layoutOf(last)
	return b.Top + b.Height + last.marginBottom
}

func (l *List) outerHeight() float64 {
	if l.clientHeight > 0 {
		return l.clientHeight
	}
	return l.ContentHeight()
}

// viewportTop is the list's top edge in viewport coordinates.
func (l *List) viewportTop() float64 {
	return l.top - l.doc.body.scrollTop
}

// contentOffset is how far the list content is scrolled within the list.
func (l *List) contentOffset() float64 {
	if l.Scrollable() {
		return l.scrollTop
	}
	return 0
}

func (l *List) Parent() domain.Element { return l.doc.body }
func (l *List) IsElement() bool        { return true }

func (l *List) Layout() domain.Box {
	return domain.Box{Top: l.top, Height: l.outerHeight()}
}

func (l *List) ClientRect() domain.Rect {
	return domain.Rect{Top: l.viewportTop(), Width: l.doc.width, Height: l.outerHeight()}
}

func (l *List) Transform() domain.Transform   { return domain.Transform{} }
func (l *List) SetTransform(domain.Transform) {}
func (l *List) Focus()                        { l.doc.setFocus(l) }

func (l *List) ScrollTop() float64 { return l.scrollTop }

// SetScrollTop clamps to the scrollable range.
func (l *List) SetScrollTop(v float64) {
	l.scrollTop = clamp(v, 0, math.Max(0, l.ScrollHeight()-l.ClientHeight()))
}

func (l *List) ScrollHeight() float64 { return l.ContentHeight() }

func (l *List) ClientHeight() float64 {
	if l.clientHeight > 0 {
		return l.clientHeight
	}
	return l.ContentHeight()
}

// Scrollable reports whether the list clips its content.
func (l *List) Scrollable() bool { return l.clientHeight > 0 }

// Item is a list entry.
type Item struct {
	style
	list         *List
	id           string
	height       float64
	marginTop    float64
	marginBottom float64
	transform    domain.Transform
}

// ID returns the item id.
func (it *Item) ID() string { return it.id }

func (it *Item) Parent() domain.Element { return it.list }
func (it *Item) IsElement() bool        { return true }
func (it *Item) Layout() domain.Box     { return it.list.layoutOf(it) }

// ClientRect places the item in the viewport, transform and scroll applied.
func (it *Item) ClientRect() domain.Rect {
	b := it.Layout()
	return domain.Rect{
		Top:    it.list.viewportTop() + b.Top + it.transform.Y - it.list.contentOffset(),
		Left:   it.transform.X,
		Width:  it.list.doc.width,
		Height: it.height,
	}
}

func (it *Item) Transform() domain.Transform     { return it.transform }
func (it *Item) SetTransform(t domain.Transform) { it.transform = t }
func (it *Item) Focus()                          { it.list.doc.setFocus(it) }

// Text is a non-element child node.
type Text struct {
	list *List
}

func (t *Text) Parent() domain.Element              { return t.list }
func (t *Text) IsElement() bool                     { return false }
func (t *Text) Layout() domain.Box                  { return domain.Box{} }
func (t *Text) ClientRect() domain.Rect             { return domain.Rect{} }
func (t *Text) Transform() domain.Transform         { return domain.Transform{} }
func (t *Text) SetTransform(domain.Transform)       {}
func (t *Text) SetProperty(domain.Property, string) {}
func (t *Text) AddClass(string)                     {}
func (t *Text) RemoveClass(string)                  {}
func (t *Text) Focus()                              {}

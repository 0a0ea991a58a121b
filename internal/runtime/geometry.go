package runtime

import (
	"math"

	"github.com/aretw0/reorder/pkg/domain"
)

// totalMovement is the displacement since pointer-down, with the scroll
// applied to the scroll container added to Y.
func (e *Engine) totalMovement() domain.Movement {
	s := e.session
	scrolled := s.scroller.ScrollTop() - s.originScrollTop
	return domain.Movement{
		X:    s.pos.latest.X - s.pos.start.X,
		Y:    s.pos.latest.Y - s.pos.start.Y + scrolled,
		Time: s.pos.latest.Time.Sub(s.pos.start.Time),
	}
}

func (e *Engine) absoluteMovement() domain.AbsMovement {
	return e.totalMovement().Abs()
}

// updateScrolling scrolls the container when the dragged node sits in the
// edge zone, by up to one zone per call. It reports whether scrollTop moved.
func (e *Engine) updateScrolling() bool {
	s := e.session
	zone := e.cfg.AutoscrollZone
	vh := e.container.Viewport().Height()
	cr := s.scroller.ClientRect()
	tr := s.node.ClientRect()

	bottomOffset := math.Min(cr.Bottom(), vh) - tr.Bottom()
	topOffset := tr.Top - math.Max(cr.Top, 0)
	maxScrollTop := s.originScrollHeight - math.Min(s.scroller.ClientHeight(), vh)

	var offset float64
	switch {
	case bottomOffset < zone:
		offset = math.Min(zone, zone-bottomOffset)
	case topOffset < zone:
		offset = math.Max(-zone, topOffset-zone)
	default:
		return false
	}

	cur := s.scroller.ScrollTop()
	next := math.Max(0, math.Min(maxScrollTop, cur+offset))
	if next == cur {
		return false
	}
	s.scroller.SetScrollTop(next)
	return s.scroller.ScrollTop() != cur
}

// findScroller returns the nearest scrollable ancestor of el, falling back to
// the viewport's scrolling element.
func findScroller(el domain.Element, vp domain.Viewport) domain.Scroller {
	for p := el.Parent(); p != nil; p = p.Parent() {
		if s, ok := p.(domain.Scroller); ok && s.Scrollable() {
			return s
		}
	}
	return vp.ScrollingElement()
}

// findNode walks up from target to the direct child of the container.
func (e *Engine) findNode(target domain.Element) domain.Element {
	root := domain.Element(e.container)
	for n := target; n != nil; n = n.Parent() {
		if n.Parent() == root {
			if !n.IsElement() {
				return nil
			}
			return n
		}
	}
	return nil
}

// elementIndex counts the element siblings before node.
func elementIndex(children []domain.Element, node domain.Element) int {
	idx := 0
	for _, c := range children {
		if c == node {
			return idx
		}
		if c.IsElement() {
			idx++
		}
	}
	return -1
}

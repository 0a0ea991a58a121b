package domain

// Property names the inline style properties the engine writes on elements.
type Property string

const (
	PropTransition Property = "transition"
	PropZIndex     Property = "z-index"
	PropUserSelect Property = "user-select"
	PropWillChange Property = "will-change"
)

// Class names applied to the dragged node.
const (
	ClassDragging = "reorder-dragging"
	ClassShadow   = "reorder-shadow"
	ClassDropping = "reorder-dropping"
)

// Element is a node of the host tree as seen by the engine.
// Non-element nodes (text, comments) report IsElement false and are skipped
// when counting siblings.
type Element interface {
	Parent() Element
	IsElement() bool

	// Layout returns the box relative to the offset parent, ignoring transforms.
	Layout() Box
	// ClientRect returns the box in viewport coordinates, transforms included.
	ClientRect() Rect

	Transform() Transform
	SetTransform(Transform)
	// SetProperty writes an inline style property. An empty value clears it.
	SetProperty(Property, string)
	AddClass(string)
	RemoveClass(string)
	Focus()
}

// Container is the list element the engine is attached to.
type Container interface {
	Element
	// Children returns every child node in document order, including non-elements.
	Children() []Element
	Viewport() Viewport
}

// Scroller is an element whose content can be scrolled vertically.
type Scroller interface {
	ScrollTop() float64
	SetScrollTop(float64)
	ScrollHeight() float64
	ClientHeight() float64
	ClientRect() Rect
	// Scrollable reports whether the element clips and scrolls its overflow.
	Scrollable() bool
}

// Viewport describes the visible window and its document scroller.
type Viewport interface {
	Height() float64
	ScrollingElement() Scroller
}

// Contains reports whether el is root or one of its descendants.
func Contains(root, el Element) bool {
	for n := el; n != nil; n = n.Parent() {
		if n == root {
			return true
		}
	}
	return false
}

package domain

import (
	"math"
	"time"
)

// Point is a position in viewport pixels.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sample is a pointer position captured at an instant.
type Sample struct {
	Point
	Time time.Time
}

// Movement is the pointer displacement since the gesture started.
// Y already includes any scroll applied to the scroll container.
type Movement struct {
	X    float64
	Y    float64
	Time time.Duration
}

// Direction labels the sign of a displacement component.
type Direction string

const (
	DirectionNone  Direction = ""
	DirectionUp    Direction = "up"
	DirectionDown  Direction = "down"
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// AbsMovement holds unsigned magnitudes plus direction labels.
type AbsMovement struct {
	X          float64
	Y          float64
	Time       time.Duration
	DirectionX Direction
	DirectionY Direction
}

// Abs converts a signed movement into magnitudes and direction labels.
func (m Movement) Abs() AbsMovement {
	out := AbsMovement{X: math.Abs(m.X), Y: math.Abs(m.Y), Time: m.Time}
	switch {
	case m.X < 0:
		out.DirectionX = DirectionLeft
	case m.X > 0:
		out.DirectionX = DirectionRight
	}
	switch {
	case m.Y < 0:
		out.DirectionY = DirectionUp
	case m.Y > 0:
		out.DirectionY = DirectionDown
	}
	return out
}

// Velocity is expressed in pixels per second.
type Velocity struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is a box in viewport coordinates.
type Rect struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Bottom returns the lower edge of the rect.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Contains reports whether p lies inside the rect, edges included on top and left.
func (r Rect) Contains(p Point) bool {
	return p.Y >= r.Top && p.Y < r.Bottom() && p.X >= r.Left && p.X < r.Left+r.Width
}

// Box is an element's layout box relative to its offset parent, ignoring transforms.
type Box struct {
	Top          float64
	Height       float64
	MarginTop    float64
	MarginBottom float64
}

// OuterHeight is the height the engine freezes for a dragged node:
// the element height plus the larger of its vertical margins.
func (b Box) OuterHeight() float64 {
	return b.Height + math.Max(b.MarginTop, b.MarginBottom)
}

// Transform is a 2D translation applied on top of layout.
type Transform struct {
	X float64
	Y float64
}

// Translate returns t shifted by dx, dy.
func (t Transform) Translate(dx, dy float64) Transform {
	return Transform{X: t.X + dx, Y: t.Y + dy}
}

/*
Package dsl provides a fluent builder for gesture traces.

Traces are normally recorded, but tests and examples often need a
specific gesture. The builder lays out the list, tracks the pointer and
the clock, and produces a validated domain.Trace.

Example usage:

	tr, err := dsl.New("drag-to-top").
		Viewport(600).
		Items(50, "a", "b", "c").
		Down("c").
		Wait(400 * time.Millisecond).
		MoveBy(0, -100).
		Up().
		Build()
*/
package dsl

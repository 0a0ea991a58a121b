// Package dom is an in-memory host tree: a document with a scrolling body and
// vertical lists of fixed-height items. It implements the element interfaces
// of the domain package so the engine can run headless, in tests, replays and
// the terminal demo.
//
// Coordinates are pixels. Item layout follows block flow with collapsing
// vertical margins. A tree is not safe for concurrent use.
package dom

// Package clock provides the schedulers that drive the engine's timers and
// animation frames: a manual clock for tests and replays, and a posting
// scheduler that marshals real timers onto a host event loop.
package clock

/*
Package reorder is a headless gesture engine for vertical lists. It tells a
tap from a scroll from a drag-to-reorder and, on drop, reports where the
dragged item belongs.

It implements a small reentrant state machine (idle, undecided, reorder)
over an abstract host tree. The host feeds pointer events and interruptions,
and listens for intents. Whether an item actually moves is up to the host:
the engine only computes the splice index and animates the preview.

# Concept

Pressing an item enters the undecided state. Moving more than a few pixels
vertically gives the gesture back to native scrolling. Holding still for the
hold delay asks listeners (before-reorder) and starts a drag. Releasing
without a drag emits a tap. Any listener may veto an intent with
PreventDefault or cancel the whole gesture by calling Cancel, even from
inside a notification.

# Usage

	eng := reorder.New(reorder.WithScheduler(hostScheduler))
	if err := eng.Attach(list); err != nil {
		log.Fatal(err)
	}
	eng.On(domain.IntentReorder, func(i *domain.Intent) {
		moveItem(i.Target, i.InsertBefore)
	})

	// From the host's input loop:
	if eng.Handle(ev) {
		suppressDefault(ev)
	}

Without WithScheduler, run the engine's own loop and hand input to it:

	go eng.Run(ctx)
	eng.Do(func() { eng.Handle(ev) })

# Threading

An engine is driven from one goroutine. Listeners run synchronously inside
Handle and may call back into the engine.
*/
package reorder

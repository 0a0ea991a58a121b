/*
Package domain contains the core models of the reorder gesture engine.

It describes pointer input, the geometry the engine measures on the host tree,
the intents it publishes to listeners and the pre-drag snapshot used to compute
where a dragged item lands. The package holds no I/O and no timers, following
Hexagonal Architecture principles: everything that touches the host lives
behind the interfaces in this package (Element, Container, Scroller, Viewport)
or in the ports package.

# Key Entities

  - PointerEvent: A normalized mouse or touch sample delivered by the host.
  - StateID: The gesture state (idle, undecided, reorder).
  - Intent: A cancelable notification (before-wait, before-reorder, reorder, tap).
  - Snapshot: Frozen sibling positions plus the splice-index calculation.
  - Trace: A recorded gesture that can be replayed headlessly.
*/
package domain

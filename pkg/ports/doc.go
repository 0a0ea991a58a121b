/*
Package ports defines the driven ports (interfaces) of the reorder engine.

These interfaces decouple the gesture state machine from the host: how time
passes, how animations run, how intents reach listeners and where recorded
gesture traces are kept.

# Key Interfaces

  - Scheduler: One-shot timers and animation-frame callbacks.
  - Animator: Runs the drop animation and reports completion.
  - Dispatcher: Delivers intents to listeners and reports vetoes.
  - TraceStore: Persists recorded gesture traces.
  - DistributedLocker: Serializes trace updates across replicas.
*/
package ports

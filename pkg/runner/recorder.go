package runner

import (
	"sync"
	"time"

	"github.com/aretw0/reorder/pkg/domain"
)

// Recorder captures live input as a replayable trace. Event times are
// stored relative to the first recorded event.
type Recorder struct {
	mu    sync.Mutex
	start time.Time
	trace domain.Trace
}

// NewRecorder starts a trace over the given list fixture.
func NewRecorder(id string, layout domain.Layout, items []domain.ItemSpec) *Recorder {
	return &Recorder{
		trace: domain.Trace{
			ID:     id,
			Layout: layout,
			Items:  append([]domain.ItemSpec(nil), items...),
		},
	}
}

// Record appends ev, stamping it with at.
func (r *Recorder) Record(at time.Time, ev domain.TraceEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.start.IsZero() {
		r.start = at
		r.trace.CreatedAt = at.UTC()
	}
	ev.AtMS = at.Sub(r.start).Milliseconds()
	if n := len(r.trace.Events); n > 0 && ev.AtMS < r.trace.Events[n-1].AtMS {
		ev.AtMS = r.trace.Events[n-1].AtMS
	}
	r.trace.Events = append(r.trace.Events, ev)
}

// RecordPointer appends a pointer event. item names the down target, if any.
func (r *Recorder) RecordPointer(ev domain.PointerEvent, item string) {
	r.Record(ev.Time, domain.TraceEvent{
		Kind:    domain.TraceEventKind(ev.Kind),
		Source:  ev.Source,
		X:       ev.Point.X,
		Y:       ev.Point.Y,
		Item:    item,
		Touches: ev.Touches,
		Button:  ev.Button,
	})
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.trace.Events)
}

// Trace returns a copy of what was recorded so far.
func (r *Recorder) Trace() *domain.Trace {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.trace.Clone()
}

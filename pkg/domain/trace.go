package domain

import (
	"fmt"
	"time"
)

// TraceEventKind extends pointer phases with host interruptions so a trace
// can replay everything the engine reacts to.
type TraceEventKind string

const (
	TraceDown      TraceEventKind = "down"
	TraceMove      TraceEventKind = "move"
	TraceUp        TraceEventKind = "up"
	TraceLeave     TraceEventKind = "leave"
	TraceCancel    TraceEventKind = "cancel"
	TraceBlur      TraceEventKind = "blur"
	TraceSelection TraceEventKind = "selection"
	TraceAbort     TraceEventKind = "abort"
)

// TraceEvent is one recorded input, stamped relative to the trace start.
type TraceEvent struct {
	Kind   TraceEventKind `json:"kind" yaml:"kind"`
	Source Source         `json:"source,omitempty" yaml:"source,omitempty"`
	AtMS   int64          `json:"at_ms" yaml:"at_ms"`
	X      float64        `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64        `json:"y,omitempty" yaml:"y,omitempty"`
	// Item targets a specific item on down. When empty the item under (X, Y) is used.
	Item    string `json:"item,omitempty" yaml:"item,omitempty"`
	Touches int    `json:"touches,omitempty" yaml:"touches,omitempty"`
	Button  int    `json:"button,omitempty" yaml:"button,omitempty"`
}

// At returns the event offset as a duration.
func (e TraceEvent) At() time.Duration {
	return time.Duration(e.AtMS) * time.Millisecond
}

// ItemSpec describes one list item in a trace fixture.
type ItemSpec struct {
	ID           string  `json:"id" yaml:"id"`
	Height       float64 `json:"height" yaml:"height"`
	MarginTop    float64 `json:"margin_top,omitempty" yaml:"margin_top,omitempty"`
	MarginBottom float64 `json:"margin_bottom,omitempty" yaml:"margin_bottom,omitempty"`
}

// Layout places the list inside the viewport.
type Layout struct {
	ViewportHeight float64 `json:"viewport_height" yaml:"viewport_height"`
	// ListTop is the list offset from the top of the document.
	ListTop float64 `json:"list_top,omitempty" yaml:"list_top,omitempty"`
	// ListHeight makes the list its own scroll container when positive.
	ListHeight float64 `json:"list_height,omitempty" yaml:"list_height,omitempty"`
	Width      float64 `json:"width,omitempty" yaml:"width,omitempty"`
}

// ListenerPolicy scripts how the host answers each intent during replay.
type ListenerPolicy struct {
	PreventBeforeWait    bool `json:"prevent_before_wait,omitempty" yaml:"prevent_before_wait,omitempty"`
	PreventBeforeReorder bool `json:"prevent_before_reorder,omitempty" yaml:"prevent_before_reorder,omitempty"`
	PreventTap           bool `json:"prevent_tap,omitempty" yaml:"prevent_tap,omitempty"`
	// KeepOrder skips applying the reorder to the list on drop.
	KeepOrder bool `json:"keep_order,omitempty" yaml:"keep_order,omitempty"`
}

// Trace is a recorded gesture with the list it was performed on.
type Trace struct {
	ID        string         `json:"id" yaml:"id"`
	Name      string         `json:"name,omitempty" yaml:"name,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	Layout    Layout         `json:"layout" yaml:"layout"`
	Items     []ItemSpec     `json:"items" yaml:"items"`
	Listeners ListenerPolicy `json:"listeners,omitzero" yaml:"listeners,omitempty"`
	Events    []TraceEvent   `json:"events" yaml:"events"`
	// Sealed holds the encrypted trace when a store encrypts at rest. A
	// sealed trace carries nothing else but its ID and CreatedAt.
	Sealed string `json:"sealed,omitempty" yaml:"sealed,omitempty"`
}

// Validate checks that the trace can be replayed.
func (t *Trace) Validate() error {
	if t == nil {
		return fmt.Errorf("%w: nil trace", ErrInvalidTrace)
	}
	if err := ValidateTraceID(t.ID); err != nil {
		return err
	}
	if t.Sealed != "" {
		return fmt.Errorf("%w: trace %q is sealed", ErrInvalidTrace, t.ID)
	}
	if t.Layout.ViewportHeight <= 0 {
		return fmt.Errorf("%w: viewport_height must be positive", ErrInvalidTrace)
	}
	if len(t.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidTrace)
	}
	seen := make(map[string]bool, len(t.Items))
	for i, it := range t.Items {
		if it.ID == "" {
			return fmt.Errorf("%w: item %d has no id", ErrInvalidTrace, i)
		}
		if seen[it.ID] {
			return fmt.Errorf("%w: duplicate item %q", ErrInvalidTrace, it.ID)
		}
		if it.Height <= 0 {
			return fmt.Errorf("%w: item %q height must be positive", ErrInvalidTrace, it.ID)
		}
		seen[it.ID] = true
	}
	var last int64
	for i, ev := range t.Events {
		switch ev.Kind {
		case TraceDown, TraceMove, TraceUp, TraceLeave, TraceCancel, TraceBlur, TraceSelection, TraceAbort:
		default:
			return fmt.Errorf("%w: event %d has unknown kind %q", ErrInvalidTrace, i, ev.Kind)
		}
		if ev.AtMS < last {
			return fmt.Errorf("%w: event %d goes back in time", ErrInvalidTrace, i)
		}
		if ev.Item != "" && !seen[ev.Item] {
			return fmt.Errorf("%w: event %d targets unknown item %q", ErrInvalidTrace, i, ev.Item)
		}
		last = ev.AtMS
	}
	return nil
}

// MaxTraceIDLength bounds trace identifiers.
const MaxTraceIDLength = 128

// ValidateTraceID rejects IDs that are empty, too long or contain anything
// other than letters, digits, '-', '_' and '.'. IDs double as file names and
// URL segments, so ".." and leading dots are rejected too.
func ValidateTraceID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidTrace)
	}
	if len(id) > MaxTraceIDLength {
		return fmt.Errorf("%w: id longer than %d bytes", ErrInvalidTrace, MaxTraceIDLength)
	}
	if id[0] == '.' {
		return fmt.Errorf("%w: id %q starts with a dot", ErrInvalidTrace, id)
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.':
		default:
			return fmt.Errorf("%w: id %q contains %q", ErrInvalidTrace, id, r)
		}
	}
	return nil
}

// Clone returns a deep copy of the trace.
func (t *Trace) Clone() *Trace {
	c := *t
	c.Items = append([]ItemSpec(nil), t.Items...)
	c.Events = append([]TraceEvent(nil), t.Events...)
	return &c
}

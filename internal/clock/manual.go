package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/aretw0/reorder/pkg/ports"
)

// Manual is a controllable scheduler. Time only moves when Advance or
// AdvanceTo is called, and frames only run on RunFrames.
type Manual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*manualTimer
	frames []func()
}

type manualTimer struct {
	m   *Manual
	due time.Time
	seq uint64
	fn  func()
}

// NewManual creates a manual clock starting at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the current mocked time.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// AfterFunc schedules fn to run once the clock reaches now+d.
func (m *Manual) AfterFunc(d time.Duration, fn func()) ports.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	t := &manualTimer{m: m, due: m.now.Add(d), seq: m.seq, fn: fn}
	m.timers = append(m.timers, t)
	return t
}

// RequestFrame queues fn for the next RunFrames call.
func (m *Manual) RequestFrame(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.frames = append(m.frames, fn)
}

func (t *manualTimer) Stop() bool {
	m := t.m
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.timers {
		if other == t {
			m.timers = append(m.timers[:i], m.timers[i+1:]...)
			return true
		}
	}
	return false
}

// Advance moves the clock forward by d. Timers fire in due order, each
// observing Now equal to its due time. Pending frames run once at the end.
func (m *Manual) Advance(d time.Duration) {
	m.AdvanceTo(m.Now().Add(d))
}

// AdvanceTo moves the clock to target. Moving backwards is a no-op.
func (m *Manual) AdvanceTo(target time.Time) {
	for {
		m.mu.Lock()
		next := m.popDue(target)
		if next == nil {
			if target.After(m.now) {
				m.now = target
			}
			m.mu.Unlock()
			break
		}
		m.now = next.due
		m.mu.Unlock()
		next.fn()
	}
	m.RunFrames()
}

func (m *Manual) popDue(target time.Time) *manualTimer {
	if len(m.timers) == 0 {
		return nil
	}
	sort.SliceStable(m.timers, func(i, j int) bool {
		if m.timers[i].due.Equal(m.timers[j].due) {
			return m.timers[i].seq < m.timers[j].seq
		}
		return m.timers[i].due.Before(m.timers[j].due)
	})
	first := m.timers[0]
	if first.due.After(target) {
		return nil
	}
	m.timers = m.timers[1:]
	return first
}

// RunFrames runs the frames queued so far and returns how many ran.
// Frames requested while running are kept for the next call.
func (m *Manual) RunFrames() int {
	m.mu.Lock()
	batch := m.frames
	m.frames = nil
	m.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
	return len(batch)
}

// Pending returns the number of armed timers.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// PendingFrames returns the number of queued frames.
func (m *Manual) PendingFrames() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.frames)
}

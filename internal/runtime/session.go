package runtime

import (
	"time"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
)

// sampler keeps the start, latest and a slowly refreshed previous sample.
type sampler struct {
	interval time.Duration
	start    domain.Sample
	latest   domain.Sample
	previous domain.Sample
	last     domain.Velocity
}

func newSampler(at domain.Sample, interval time.Duration) sampler {
	return sampler{interval: interval, start: at, latest: at, previous: at}
}

func (s *sampler) update(at domain.Sample) {
	s.latest = at
}

// decay refreshes previous once it is at least one interval older than latest.
func (s *sampler) decay() {
	if s.latest.Time.Sub(s.previous.Time) < s.interval {
		return
	}
	s.last = s.between(s.previous, s.latest)
	s.previous = s.latest
}

func (s *sampler) velocity() domain.Velocity {
	if !s.latest.Time.After(s.previous.Time) {
		return s.last
	}
	return s.between(s.previous, s.latest)
}

func (s *sampler) between(a, b domain.Sample) domain.Velocity {
	dt := b.Time.Sub(a.Time).Seconds()
	if dt <= 0 {
		return domain.Velocity{}
	}
	return domain.Velocity{X: (b.X - a.X) / dt, Y: (b.Y - a.Y) / dt}
}

// session is the per-gesture record. It exists from pointer-down until the
// engine returns to idle.
type session struct {
	originalTarget domain.Element
	node           domain.Element
	baseTransform  domain.Transform
	height         float64

	scroller           domain.Scroller
	originScrollTop    float64
	originScrollHeight float64

	pos sampler

	hold ports.Timer
	drag *dragState
}

// dragState exists only while reordering.
type dragState struct {
	snapshot      domain.Snapshot
	originalIndex int
	leaveTimer    ports.Timer
	framePending  bool
}

func (d *dragState) stopLeaveTimer() {
	if d.leaveTimer != nil {
		d.leaveTimer.Stop()
		d.leaveTimer = nil
	}
}

package runtime

import (
	"fmt"
	"time"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
)

// TimedAnimator sets a CSS-style transition, applies the target transform and
// reports completion after the duration elapses on the scheduler.
type TimedAnimator struct {
	sched ports.Scheduler
}

// NewTimedAnimator creates an animator driven by sched.
func NewTimedAnimator(sched ports.Scheduler) *TimedAnimator {
	return &TimedAnimator{sched: sched}
}

func (a *TimedAnimator) Animate(el domain.Element, to domain.Transform, d time.Duration, done func()) {
	el.SetProperty(domain.PropTransition, fmt.Sprintf("transform %dms ease-out", d.Milliseconds()))
	el.SetTransform(to)
	a.sched.AfterFunc(d, done)
}

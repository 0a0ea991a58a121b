package clock

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/aretw0/reorder/pkg/ports"
)

// FrameInterval approximates a 60Hz display refresh.
const FrameInterval = 16 * time.Millisecond

// PostFunc hands a callback to the host's event loop.
// It reports false if the loop is gone and the callback was dropped.
type PostFunc func(fn func()) bool

// Posted schedules real timers but runs every callback through post, so
// callbacks execute on the host loop and never race with input handling.
type Posted struct {
	post PostFunc
}

// NewPosted creates a scheduler bound to a host event loop.
func NewPosted(post PostFunc) *Posted {
	return &Posted{post: post}
}

type postedTimer struct {
	timer   *time.Timer
	stopped atomic.Bool
}

// Stop also suppresses a callback that already fired but is still queued on
// the loop, so a stale timer cannot act on a newer gesture.
func (t *postedTimer) Stop() bool {
	if t.stopped.Swap(true) {
		return false
	}
	t.timer.Stop()
	return true
}

func (p *Posted) Now() time.Time { return time.Now() }

func (p *Posted) AfterFunc(d time.Duration, fn func()) ports.Timer {
	t := &postedTimer{}
	t.timer = time.AfterFunc(d, func() {
		p.post(func() {
			if t.stopped.Swap(true) {
				return
			}
			fn()
		})
	})
	return t
}

func (p *Posted) RequestFrame(fn func()) {
	p.AfterFunc(FrameInterval, fn)
}

// Loop is a minimal event loop for hosts without one of their own.
type Loop struct {
	queue chan func()
	done  chan struct{}
}

// NewLoop creates a loop with a buffered queue.
func NewLoop(buffer int) *Loop {
	return &Loop{
		queue: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Post enqueues fn. It returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	case l.queue <- fn:
		return true
	}
}

// Scheduler returns a Posted scheduler feeding this loop.
func (l *Loop) Scheduler() *Posted {
	return NewPosted(l.Post)
}

// Run executes queued callbacks until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.queue:
			fn()
		}
	}
}

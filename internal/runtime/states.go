package runtime

import "github.com/aretw0/reorder/pkg/domain"

// stateHandlers is the behavior of one gesture state. Handlers read and
// write the engine's current session; move, leave and end return whether the
// host should suppress the event's default action.
type stateHandlers struct {
	allowTextSelection bool

	enter func(e *Engine, gen uint64)
	exit  func(e *Engine, to domain.StateID)
	move  func(e *Engine) bool
	leave func(e *Engine) bool
	end   func(e *Engine) bool
}

var stateTable [3]stateHandlers

func init() {
	stateTable = [...]stateHandlers{
		domain.StateIdle: {
			allowTextSelection: true,
			enter:              enterIdle,
		},
		domain.StateUndecided: {
			enter: enterUndecided,
			exit:  exitUndecided,
			move:  moveUndecided,
			leave: leaveUndecided,
			end:   endUndecided,
		},
		domain.StateReorder: {
			enter: enterReorder,
			exit:  exitReorder,
			move:  moveReorder,
			leave: leaveReorder,
			end:   endReorder,
		},
	}
}

func enterIdle(e *Engine, _ uint64) {
	e.session = nil
	e.usingTouch = false
}

func enterUndecided(e *Engine, gen uint64) {
	s := e.session
	s.height = s.node.Layout().OuterHeight()
	s.node.SetProperty(domain.PropWillChange, "transform")
	s.node.SetProperty(domain.PropTransition, "")

	if e.dispatch(domain.NewIntent(domain.IntentBeforeWait, s.originalTarget)) {
		if e.generation == gen {
			e.startReorder(gen)
		}
		return
	}
	if e.generation != gen {
		return
	}
	s.hold = e.sched.AfterFunc(e.cfg.HoldDelay, func() { e.holdElapsed(gen) })
}

func (e *Engine) holdElapsed(gen uint64) {
	if e.generation != gen || e.state != domain.StateUndecided {
		return
	}
	e.session.hold = nil
	move := e.absoluteMovement()
	if e.canPreventScrolling && move.X < e.cfg.HoldSlopX && move.Y < e.cfg.HoldSlopY {
		e.startReorder(gen)
	}
}

// startReorder asks listeners for permission, then begins the drag.
func (e *Engine) startReorder(gen uint64) {
	if e.dispatch(domain.NewIntent(domain.IntentBeforeReorder, e.session.originalTarget)) {
		return
	}
	if e.generation == gen {
		e.transition(domain.StateReorder)
	}
}

func exitUndecided(e *Engine, to domain.StateID) {
	s := e.session
	if s.hold != nil {
		s.hold.Stop()
		s.hold = nil
	}
	if to != domain.StateReorder {
		s.node.SetProperty(domain.PropWillChange, "")
	}
}

func moveUndecided(e *Engine) bool {
	move := e.absoluteMovement()
	if move.Y > e.cfg.ScrollAbandonY {
		e.abort(domain.AbortScroll)
		return false
	}
	if move.X > move.Y*e.cfg.HorizontalBias {
		// Horizontal swipes belong to the host; never suppress them.
		e.logger.Debug("horizontal drift left to host", "dx", move.X, "dy", move.Y)
		return false
	}
	// Still ambiguous: native scrolling stays possible until the hold fires.
	return false
}

func leaveUndecided(e *Engine) bool {
	e.abort(domain.AbortPointerLeft)
	return false
}

func endUndecided(e *Engine) bool {
	prevented := e.dispatch(domain.NewIntent(domain.IntentTap, e.session.originalTarget))
	e.transition(domain.StateIdle)
	return prevented
}

func enterReorder(e *Engine, gen uint64) {
	s := e.session
	if e.cfg.KeepFocus {
		s.node.Focus()
		if e.generation != gen {
			return
		}
	}
	s.height = s.node.Layout().OuterHeight()

	children := e.container.Children()
	zero := s.node.Layout().Top + s.height/2
	d := &dragState{originalIndex: elementIndex(children, s.node)}

	siblings := make([]domain.Sibling, 0, len(children))
	for _, c := range children {
		if !c.IsElement() || c == s.node {
			continue
		}
		if len(siblings) >= d.originalIndex {
			c.SetProperty(domain.PropTransition, e.cfg.SiblingTransition)
		}
		b := c.Layout()
		siblings = append(siblings, domain.Sibling{
			Node: c,
			Base: c.Transform(),
			Pos:  domain.SiblingPos(b.Top, b.Height, zero),
		})
	}
	d.snapshot = domain.NewSnapshot(zero, s.height, siblings)
	s.drag = d

	s.node.AddClass(domain.ClassDragging)
	if e.cfg.Raised {
		s.node.AddClass(domain.ClassShadow)
	}
	if e.cfg.DraggingClassName != "" {
		s.node.AddClass(e.cfg.DraggingClassName)
	}
	s.node.SetProperty(domain.PropZIndex, "99999")
	s.node.SetProperty(domain.PropUserSelect, "none")

	e.syncDrag()
}

func exitReorder(e *Engine, _ domain.StateID) {
	s := e.session
	d := s.drag
	if d == nil {
		return
	}
	s.drag = nil
	d.stopLeaveTimer()

	if e.cfg.KeepFocus {
		e.container.Focus()
	}

	node, base := s.node, s.baseTransform
	node.SetProperty(domain.PropUserSelect, "")
	node.AddClass(domain.ClassDropping)
	classes := []string{domain.ClassDropping, domain.ClassDragging, domain.ClassShadow, e.cfg.DraggingClassName}
	e.animator.Animate(node, base, e.cfg.DropDuration, func() {
		// A newer drag may have picked the same node up again.
		if e.session != nil && e.session.node == node && e.session.drag != nil {
			return
		}
		node.SetProperty(domain.PropTransition, "")
		node.SetProperty(domain.PropZIndex, "")
		node.SetProperty(domain.PropWillChange, "")
		for _, c := range classes {
			if c != "" {
				node.RemoveClass(c)
			}
		}
	})

	for _, sib := range d.snapshot.Siblings {
		sib.Node.SetTransform(sib.Base)
		sib.Node.SetProperty(domain.PropTransition, "")
	}
}

func moveReorder(e *Engine) bool {
	e.session.drag.stopLeaveTimer()
	e.requestSync()
	return true
}

func leaveReorder(e *Engine) bool {
	d := e.session.drag
	d.stopLeaveTimer()
	gen := e.generation
	d.leaveTimer = e.sched.AfterFunc(e.cfg.LeaveGrace, func() {
		if e.generation != gen {
			return
		}
		d.leaveTimer = nil
		e.abort(domain.AbortPointerLeft)
	})
	return false
}

func endReorder(e *Engine) bool {
	s := e.session
	d := s.drag
	move := e.totalMovement()
	splice := d.snapshot.SpliceIndex(move.Y)

	intent := domain.NewIntent(domain.IntentReorder, s.node)
	intent.InsertBefore = d.snapshot.InsertBefore(splice)
	intent.Detail = &domain.ReorderDetail{SpliceIndex: splice, OriginalIndex: d.originalIndex}
	e.logger.Debug("drop", "dy", move.Y, "splice", splice, "original", d.originalIndex)

	e.dispatch(intent)
	e.transition(domain.StateIdle)
	return true
}

// requestSync coalesces visual updates into one per animation frame.
func (e *Engine) requestSync() {
	s := e.session
	if s == nil || s.drag == nil || s.drag.framePending {
		return
	}
	s.drag.framePending = true
	gen := e.generation
	e.sched.RequestFrame(func() {
		if e.generation != gen || e.session != s {
			return
		}
		s.drag.framePending = false
		e.syncDrag()
	})
}

// syncDrag applies autoscroll, moves the dragged node under the pointer and
// previews the landing slot by shifting passed siblings. Keeps requesting
// frames while autoscroll makes progress, so holding still at an edge
// continues to scroll.
func (e *Engine) syncDrag() {
	s := e.session
	scrolled := e.updateScrolling()
	move := e.totalMovement()

	s.node.SetTransform(s.baseTransform.Translate(0, move.Y))
	offsets := s.drag.snapshot.Offsets(move.Y)
	for i, sib := range s.drag.snapshot.Siblings {
		sib.Node.SetTransform(sib.Base.Translate(0, offsets[i]))
	}

	if scrolled {
		e.requestSync()
	}
}

package runtime

import "github.com/aretw0/reorder/pkg/domain"

// Handle routes a pointer event through the active state and reports whether
// the host should suppress the event's default action.
func (e *Engine) Handle(ev domain.PointerEvent) bool {
	if e.container == nil {
		return false
	}
	if ev.Time.IsZero() {
		ev.Time = e.sched.Now()
	}
	switch ev.Kind {
	case domain.PointerDown:
		return e.onDown(ev)
	case domain.PointerMove:
		return e.onMove(ev)
	case domain.PointerUp:
		return e.onUp(ev)
	case domain.PointerLeave:
		return e.onLeave(ev)
	case domain.PointerCancel:
		e.abort(domain.AbortPointerCancel)
	}
	return false
}

func (e *Engine) onDown(ev domain.PointerEvent) bool {
	if ev.Source == domain.SourceTouch {
		if ev.Touches > 1 || e.session != nil {
			e.abort(domain.AbortMultiTouch)
			return false
		}
		e.usingTouch = true
	} else if e.usingTouch || ev.Button != 0 || e.session != nil {
		return false
	}

	node := e.findNode(ev.Target)
	if node == nil {
		e.usingTouch = false
		return false
	}

	e.canPreventScrolling = true
	sc := findScroller(node, e.container.Viewport())
	e.session = &session{
		originalTarget:     ev.Target,
		node:               node,
		baseTransform:      node.Transform(),
		scroller:           sc,
		originScrollTop:    sc.ScrollTop(),
		originScrollHeight: sc.ScrollHeight(),
		pos:                newSampler(domain.Sample{Point: ev.Point, Time: ev.Time}, e.cfg.SampleInterval),
	}
	e.transition(domain.StateUndecided)
	return false
}

// accepts filters emulated mouse events during touch gestures and vice versa.
func (e *Engine) accepts(ev domain.PointerEvent) bool {
	if e.session == nil {
		return false
	}
	return (ev.Source == domain.SourceTouch) == e.usingTouch
}

func (e *Engine) onMove(ev domain.PointerEvent) bool {
	if !e.accepts(ev) {
		return false
	}
	if ev.Source == domain.SourceTouch && ev.Touches > 1 {
		e.abort(domain.AbortMultiTouch)
		return false
	}

	s := e.session
	s.pos.update(domain.Sample{Point: ev.Point, Time: ev.Time})

	prevent := false
	if move := stateTable[e.state].move; move != nil {
		prevent = move(e)
	}
	if e.session == s {
		s.pos.decay()
	}
	if e.usingTouch && !prevent {
		e.canPreventScrolling = false
	}
	return prevent
}

func (e *Engine) onUp(ev domain.PointerEvent) bool {
	if !e.accepts(ev) {
		return false
	}
	if end := stateTable[e.state].end; end != nil {
		return end(e)
	}
	return false
}

func (e *Engine) onLeave(ev domain.PointerEvent) bool {
	if !e.accepts(ev) {
		return false
	}
	if leave := stateTable[e.state].leave; leave != nil {
		return leave(e)
	}
	return false
}

// HandleBlur cancels the gesture when the window loses focus.
func (e *Engine) HandleBlur() {
	e.abort(domain.AbortBlur)
}

// HandleFocusChange cancels the gesture when focus moves outside the container.
func (e *Engine) HandleFocusChange(to domain.Element) {
	if e.state == domain.StateIdle || e.container == nil {
		return
	}
	if to != nil && domain.Contains(e.container, to) {
		return
	}
	e.abort(domain.AbortFocusLost)
}

// HandleSelectionChange cancels the gesture if the active state forbids text selection.
func (e *Engine) HandleSelectionChange() {
	if stateTable[e.state].allowTextSelection {
		return
	}
	e.abort(domain.AbortSelection)
}

package runner

import "github.com/aretw0/reorder/pkg/domain"

// Outcome is what a replayed gesture turned into.
type Outcome string

const (
	OutcomeNone     Outcome = "none"
	OutcomeTap      Outcome = "tap"
	OutcomeScroll   Outcome = "scroll"
	OutcomeReorder  Outcome = "reorder"
	OutcomeCanceled Outcome = "canceled"
)

// Step is the engine state right after one trace event.
type Step struct {
	AtMS      int64                 `json:"at_ms"`
	Kind      domain.TraceEventKind `json:"kind"`
	State     domain.StateID        `json:"state"`
	Prevented bool                  `json:"prevented"`
}

// Result is the report of one replay.
type Result struct {
	TraceID    string                `json:"trace_id"`
	Name       string                `json:"name,omitempty"`
	Outcome    Outcome               `json:"outcome"`
	FinalState domain.StateID        `json:"final_state"`
	States     []domain.StateID      `json:"states"`
	Intents    []domain.IntentEvent  `json:"intents"`
	Aborts     []domain.AbortReason  `json:"aborts,omitempty"`
	Detail     *domain.ReorderDetail `json:"detail,omitempty"`
	Moved      string                `json:"moved,omitempty"`
	Order      []string              `json:"order"`
	ScrollTop  float64               `json:"scroll_top"`
	Velocity   domain.Velocity       `json:"velocity"`
	Steps      []Step                `json:"steps"`
}

func (res *Result) hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnStateEnter: func(e *domain.StateEvent) {
			res.States = append(res.States, e.To)
		},
		OnIntent: func(e *domain.IntentEvent) {
			res.Intents = append(res.Intents, *e)
			if e.Intent == domain.IntentReorder {
				res.Detail = e.Detail
			}
		},
		OnAbort: func(e *domain.AbortEvent) {
			res.Aborts = append(res.Aborts, e.Reason)
		},
	}
}

// Count returns how many intents of type t were dispatched.
func (res *Result) Count(t domain.IntentType) int {
	n := 0
	for _, i := range res.Intents {
		if i.Intent == t {
			n++
		}
	}
	return n
}

func (res *Result) classify() Outcome {
	switch {
	case res.Detail != nil:
		return OutcomeReorder
	case res.Count(domain.IntentTap) > 0:
		return OutcomeTap
	}
	for _, a := range res.Aborts {
		if a == domain.AbortScroll {
			return OutcomeScroll
		}
	}
	if len(res.Aborts) > 0 {
		return OutcomeCanceled
	}
	return OutcomeNone
}

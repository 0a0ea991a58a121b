package runner_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/reorder/internal/adapters/memory"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/runner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rows builds a trace over five 50px items a..e; item c is centered at y=125.
func rows(id string, events ...domain.TraceEvent) *domain.Trace {
	tr := &domain.Trace{
		ID:     id,
		Layout: domain.Layout{ViewportHeight: 1000},
		Events: events,
	}
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		tr.Items = append(tr.Items, domain.ItemSpec{ID: name, Height: 50})
	}
	return tr
}

func ev(kind domain.TraceEventKind, at int64, y float64) domain.TraceEvent {
	return domain.TraceEvent{Kind: kind, AtMS: at, X: 10, Y: y}
}

func TestRun_Tap(t *testing.T) {
	tr := rows("tap", ev(domain.TraceDown, 0, 125), ev(domain.TraceUp, 50, 125))

	res, err := runner.New().Run(context.Background(), tr)
	require.NoError(t, err)

	assert.Equal(t, runner.OutcomeTap, res.Outcome)
	assert.Equal(t, domain.StateIdle, res.FinalState)
	assert.Equal(t, 1, res.Count(domain.IntentBeforeWait))
	assert.Equal(t, 1, res.Count(domain.IntentTap))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.Order)
	require.Len(t, res.Steps, 2)
	assert.Equal(t, domain.StateUndecided, res.Steps[0].State)
}

func TestRun_VerticalScroll(t *testing.T) {
	tr := rows("scroll",
		ev(domain.TraceDown, 0, 125),
		ev(domain.TraceMove, 20, 146),
		ev(domain.TraceUp, 60, 146),
	)

	res, err := runner.New().Run(context.Background(), tr)
	require.NoError(t, err)

	assert.Equal(t, runner.OutcomeScroll, res.Outcome)
	assert.Equal(t, []domain.AbortReason{domain.AbortScroll}, res.Aborts)
	assert.Zero(t, res.Count(domain.IntentTap))
}

func TestRun_ReorderUpOneAndAHalfRows(t *testing.T) {
	tr := rows("drag",
		ev(domain.TraceDown, 0, 125),
		ev(domain.TraceMove, 400, 50),
		ev(domain.TraceUp, 450, 50),
	)

	res, err := runner.New().Run(context.Background(), tr)
	require.NoError(t, err)

	assert.Equal(t, runner.OutcomeReorder, res.Outcome)
	require.NotNil(t, res.Detail)
	assert.Equal(t, domain.ReorderDetail{SpliceIndex: 0, OriginalIndex: 2}, *res.Detail)
	assert.Equal(t, "c", res.Moved)
	assert.Equal(t, []string{"c", "a", "b", "d", "e"}, res.Order)
	assert.Equal(t, domain.StateReorder, res.Steps[1].State)
	assert.True(t, res.Steps[1].Prevented, "reorder claims moves")
	assert.True(t, res.Steps[2].Prevented)
}

func TestRun_KeepOrder(t *testing.T) {
	tr := rows("keep",
		ev(domain.TraceDown, 0, 125),
		ev(domain.TraceMove, 400, 50),
		ev(domain.TraceUp, 450, 50),
	)
	tr.Listeners.KeepOrder = true

	res, err := runner.New().Run(context.Background(), tr)
	require.NoError(t, err)

	assert.Equal(t, runner.OutcomeReorder, res.Outcome)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, res.Order)
}

func TestRun_BeforeReorderVetoFallsBackToTap(t *testing.T) {
	tr := rows("veto", ev(domain.TraceDown, 0, 125), ev(domain.TraceUp, 500, 125))
	tr.Listeners.PreventBeforeReorder = true

	res, err := runner.New().Run(context.Background(), tr)
	require.NoError(t, err)

	assert.Equal(t, runner.OutcomeTap, res.Outcome)
	assert.Equal(t, 1, res.Count(domain.IntentBeforeReorder))
	assert.Nil(t, res.Detail)
}

func TestRun_SecondTouchCancels(t *testing.T) {
	tr := rows("multi",
		domain.TraceEvent{Kind: domain.TraceDown, Source: domain.SourceTouch, AtMS: 0, X: 10, Y: 125},
		domain.TraceEvent{Kind: domain.TraceDown, Source: domain.SourceTouch, AtMS: 400, X: 10, Y: 25, Touches: 2},
		domain.TraceEvent{Kind: domain.TraceUp, Source: domain.SourceTouch, AtMS: 450},
	)

	res, err := runner.New().Run(context.Background(), tr)
	require.NoError(t, err)

	assert.Equal(t, runner.OutcomeCanceled, res.Outcome)
	assert.Equal(t, []domain.AbortReason{domain.AbortMultiTouch}, res.Aborts)
	assert.Equal(t, domain.StateIdle, res.FinalState)
	assert.Zero(t, res.Count(domain.IntentReorder))
}

func TestRun_HostInterruptions(t *testing.T) {
	tests := []struct {
		kind   domain.TraceEventKind
		reason domain.AbortReason
	}{
		{domain.TraceBlur, domain.AbortBlur},
		{domain.TraceSelection, domain.AbortSelection},
		{domain.TraceAbort, domain.AbortCanceled},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			tr := rows("interrupt",
				ev(domain.TraceDown, 0, 125),
				domain.TraceEvent{Kind: tt.kind, AtMS: 400},
				ev(domain.TraceUp, 450, 125),
			)

			res, err := runner.New().Run(context.Background(), tr)
			require.NoError(t, err)
			assert.Equal(t, []domain.AbortReason{tt.reason}, res.Aborts)
			assert.Equal(t, runner.OutcomeCanceled, res.Outcome)
		})
	}
}

func TestRun_HitTestsWhenItemOmitted(t *testing.T) {
	tr := rows("hit", ev(domain.TraceDown, 0, 180), ev(domain.TraceUp, 10, 180))

	var tapped string
	hooks := domain.LifecycleHooks{OnIntent: func(e *domain.IntentEvent) {
		if e.Intent == domain.IntentTap {
			tapped = string(e.Intent)
		}
	}}
	res, err := runner.New(runner.WithLifecycleHooks(hooks)).Run(context.Background(), tr)
	require.NoError(t, err)
	assert.Equal(t, runner.OutcomeTap, res.Outcome)
	assert.Equal(t, "tap", tapped, "extra hooks observe the replay")
}

func TestRun_InvalidTrace(t *testing.T) {
	_, err := runner.New().Run(context.Background(), &domain.Trace{ID: "empty"})
	assert.ErrorIs(t, err, domain.ErrInvalidTrace)
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := runner.New().Run(ctx, rows("c", ev(domain.TraceDown, 0, 125)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunStored(t *testing.T) {
	ctx := context.Background()
	_, err := runner.New().RunStored(ctx, "x")
	assert.ErrorIs(t, err, runner.ErrNoStore)

	store := memory.New()
	require.NoError(t, store.Save(ctx, rows("saved", ev(domain.TraceDown, 0, 125), ev(domain.TraceUp, 30, 125))))

	r := runner.New(runner.WithStore(store), runner.WithSettle(10*time.Millisecond))
	res, err := r.RunStored(ctx, "saved")
	require.NoError(t, err)
	assert.Equal(t, runner.OutcomeTap, res.Outcome)

	_, err = r.RunStored(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)
}

func TestReporters(t *testing.T) {
	tr := rows("drag", ev(domain.TraceDown, 0, 125), ev(domain.TraceMove, 400, 50), ev(domain.TraceUp, 450, 50))
	tr.Name = "drag\x1b[31m up"
	res, err := runner.New().Run(context.Background(), tr)
	require.NoError(t, err)
	assert.Equal(t, "drag[31m up", res.Name)

	var text bytes.Buffer
	require.NoError(t, runner.NewTextReporter(&text).Report(res))
	assert.Contains(t, text.String(), "**Outcome:** reorder")
	assert.Contains(t, text.String(), "Moved `c` from 2 to splice 0.")
	assert.Contains(t, text.String(), "Order: c a b d e")

	var rendered bytes.Buffer
	upper := runner.WithRenderer(func(md string) (string, error) { return strings.ToUpper(md), nil })
	require.NoError(t, runner.NewTextReporter(&rendered, upper).Report(res))
	assert.Contains(t, rendered.String(), "ORDER: C A B D E")

	var js bytes.Buffer
	require.NoError(t, runner.NewJSONReporter(&js).Report(res))
	var decoded map[string]any
	require.NoError(t, json.Unmarshal(js.Bytes(), &decoded))
	assert.Equal(t, "reorder", decoded["outcome"])
	assert.Equal(t, "drag", decoded["trace_id"])
}

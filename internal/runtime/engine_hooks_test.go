package runtime_test

import (
	"testing"

	"github.com/aretw0/reorder/internal/clock"
	"github.com/aretw0/reorder/internal/dom"
	"github.com/aretw0/reorder/internal/runtime"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_LifecycleHooks(t *testing.T) {
	clk := clock.NewManual(epoch)
	doc := dom.NewDocument(320, 1000)
	list := doc.NewList(0, 0)
	a := list.Append("a", 40)
	list.Append("b", 40)

	var left []string
	var intents []domain.IntentEvent
	hooks := domain.LifecycleHooks{
		OnStateLeave: func(e *domain.StateEvent) {
			left = append(left, e.From.String()+">"+e.To.String())
		},
		OnIntent: func(e *domain.IntentEvent) { intents = append(intents, *e) },
	}

	e := runtime.NewEngine(clk, gateway.New(), runtime.WithLifecycleHooks(hooks))
	require.NoError(t, e.Attach(list))

	e.Handle(domain.PointerEvent{Kind: domain.PointerDown, Source: domain.SourceMouse, Point: domain.Point{Y: 20}, Target: a})
	clk.Advance(e.Config().HoldDelay)
	e.Handle(domain.PointerEvent{Kind: domain.PointerMove, Source: domain.SourceMouse, Point: domain.Point{Y: 70}})
	e.Handle(domain.PointerEvent{Kind: domain.PointerUp, Source: domain.SourceMouse})

	assert.Equal(t, []string{"idle>undecided", "undecided>reorder", "reorder>idle"}, left)
	require.Len(t, intents, 3)
	assert.Equal(t, domain.IntentReorder, intents[2].Intent)
	assert.Equal(t, &domain.ReorderDetail{SpliceIndex: 1, OriginalIndex: 0}, intents[2].Detail)
	assert.Equal(t, epoch.Add(e.Config().HoldDelay), intents[2].Timestamp)
	assert.False(t, intents[0].Prevented)
}

func TestEngine_NilDispatcher(t *testing.T) {
	clk := clock.NewManual(epoch)
	list := dom.NewDocument(320, 1000).NewList(0, 0)
	a := list.Append("a", 40)

	e := runtime.NewEngine(clk, nil)
	require.NoError(t, e.Attach(list))
	e.Handle(domain.PointerEvent{Kind: domain.PointerDown, Source: domain.SourceMouse, Point: domain.Point{Y: 20}, Target: a})
	clk.Advance(e.Config().HoldDelay)
	assert.Equal(t, domain.StateReorder, e.State())
	assert.True(t, e.Handle(domain.PointerEvent{Kind: domain.PointerUp, Source: domain.SourceMouse}))
}

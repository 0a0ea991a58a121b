package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractTrace(id string) *domain.Trace {
	return &domain.Trace{
		ID:     id,
		Name:   "contract",
		Layout: domain.Layout{ViewportHeight: 400},
		Items: []domain.ItemSpec{
			{ID: "a", Height: 40},
			{ID: "b", Height: 40, MarginTop: 4},
		},
		Listeners: domain.ListenerPolicy{PreventTap: true},
		Events: []domain.TraceEvent{
			{Kind: domain.TraceDown, Source: domain.SourceTouch, Item: "a", Y: 20, Touches: 1},
			{Kind: domain.TraceMove, Source: domain.SourceTouch, AtMS: 320, Y: 70, Touches: 1},
			{Kind: domain.TraceUp, Source: domain.SourceTouch, AtMS: 400},
		},
	}
}

// RunTraceStoreContract runs a suite of tests to verify that a TraceStore
// implementation adheres to the defined interface contract.
func RunTraceStoreContract(t *testing.T, store TraceStore) {
	ctx := context.Background()
	traceID := "contract-trace-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		tr := contractTrace(traceID)
		require.NoError(t, store.Save(ctx, tr), "Save should not return error")

		loaded, err := store.Load(ctx, traceID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, tr.Name, loaded.Name)
		assert.Equal(t, tr.Layout, loaded.Layout)
		assert.Equal(t, tr.Items, loaded.Items)
		assert.Equal(t, tr.Events, loaded.Events)
		assert.True(t, loaded.Listeners.PreventTap)
	})

	t.Run("Save Overwrites", func(t *testing.T) {
		tr := contractTrace(traceID)
		tr.Name = "renamed"
		require.NoError(t, store.Save(ctx, tr))

		loaded, err := store.Load(ctx, traceID)
		require.NoError(t, err)
		assert.Equal(t, "renamed", loaded.Name)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, contractTrace(traceID)))
		require.NoError(t, store.Delete(ctx, traceID), "Delete should not return error")

		_, err := store.Load(ctx, traceID)
		assert.ErrorIs(t, err, domain.ErrTraceNotFound, "Load after Delete should return ErrTraceNotFound")

		assert.NoError(t, store.Delete(ctx, traceID), "Deleting twice should not fail")
	})

	t.Run("List", func(t *testing.T) {
		id1 := traceID + "-1"
		id2 := traceID + "-2"
		require.NoError(t, store.Save(ctx, contractTrace(id1)))
		require.NoError(t, store.Save(ctx, contractTrace(id2)))
		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
	})
}

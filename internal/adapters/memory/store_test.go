package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/reorder/internal/adapters/memory"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.New()
	ports.RunTraceStoreContract(t, store)
}

func TestMemoryStore_Isolation(t *testing.T) {
	ctx := context.Background()
	store := memory.New()
	tr := &domain.Trace{ID: "iso", Items: []domain.ItemSpec{{ID: "a", Height: 10}}}
	require.NoError(t, store.Save(ctx, tr))

	tr.Items[0].ID = "mutated"
	loaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.Items[0].ID)

	loaded.Items[0].ID = "again"
	reloaded, err := store.Load(ctx, "iso")
	require.NoError(t, err)
	assert.Equal(t, "a", reloaded.Items[0].ID)
}

func TestMemoryStore_RejectsBadID(t *testing.T) {
	err := memory.New().Save(context.Background(), &domain.Trace{ID: "../x"})
	assert.ErrorIs(t, err, domain.ErrInvalidTrace)
}

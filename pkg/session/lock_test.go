package session

import (
	"context"
	"fmt"
	"testing"

	"github.com/aretw0/reorder/internal/adapters/memory"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(memory.New())
	ctx := context.Background()

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("trace-%d", i)
		_ = mgr.Save(ctx, &domain.Trace{ID: id})
		_ = mgr.Delete(ctx, id)
	}

	assert.Empty(t, mgr.locks, "lock entries are dropped once unused")
}

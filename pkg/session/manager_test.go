package session_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/reorder/internal/adapters/memory"
	"github.com/aretw0/reorder/pkg/adapters/redis"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/aretw0/reorder/pkg/session"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slowStore adds latency so unguarded read-modify-write cycles would race.
type slowStore struct {
	ports.TraceStore
}

func (s slowStore) Load(ctx context.Context, id string) (*domain.Trace, error) {
	time.Sleep(2 * time.Millisecond)
	return s.TraceStore.Load(ctx, id)
}

func (s slowStore) Save(ctx context.Context, tr *domain.Trace) error {
	time.Sleep(2 * time.Millisecond)
	return s.TraceStore.Save(ctx, tr)
}

func seed(t *testing.T, mgr *session.Manager) {
	t.Helper()
	require.NoError(t, mgr.Save(context.Background(), &domain.Trace{
		ID:     "counter",
		Layout: domain.Layout{ViewportHeight: 100},
		Items:  []domain.ItemSpec{{ID: "a", Height: 10}},
	}))
}

func appendEvents(t *testing.T, mgrs ...*session.Manager) {
	t.Helper()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		mgr := mgrs[i%len(mgrs)]
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := mgr.Update(context.Background(), "counter", func(tr *domain.Trace) error {
				tr.Events = append(tr.Events, domain.TraceEvent{Kind: domain.TraceBlur})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}

func TestManager_UpdateSerializes(t *testing.T) {
	mgr := session.NewManager(slowStore{memory.New()})
	seed(t, mgr)

	appendEvents(t, mgr)

	tr, err := mgr.Load(context.Background(), "counter")
	require.NoError(t, err)
	assert.Len(t, tr.Events, 20, "no update was lost")
}

func TestManager_DistributedLockAcrossManagers(t *testing.T) {
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	defer client.Close()

	store := slowStore{memory.New()}
	a := session.NewManager(store, session.WithLocker(redis.NewLocker(client, "t:")), session.WithLockTTL(time.Second))
	b := session.NewManager(store, session.WithLocker(redis.NewLocker(client, "t:")), session.WithLockTTL(time.Second))
	seed(t, a)

	appendEvents(t, a, b)

	tr, err := b.Load(context.Background(), "counter")
	require.NoError(t, err)
	assert.Len(t, tr.Events, 20)
	assert.False(t, mr.Exists("t:lock:trace:counter"), "locks are released")
}

func TestManager_UpdateErrors(t *testing.T) {
	ctx := context.Background()
	mgr := session.NewManager(memory.New())
	seed(t, mgr)

	_, err := mgr.Update(ctx, "missing", func(*domain.Trace) error { return nil })
	assert.ErrorIs(t, err, domain.ErrTraceNotFound)

	boom := errors.New("boom")
	_, err = mgr.Update(ctx, "counter", func(tr *domain.Trace) error {
		tr.Name = "changed"
		return boom
	})
	assert.ErrorIs(t, err, boom)
	tr, err := mgr.Load(ctx, "counter")
	require.NoError(t, err)
	assert.Empty(t, tr.Name, "a failed update is not saved")

	_, err = mgr.Update(ctx, "counter", func(tr *domain.Trace) error {
		tr.ID = "other"
		return nil
	})
	assert.ErrorIs(t, err, domain.ErrInvalidTrace)

	ids, err := mgr.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"counter"}, ids)
	assert.NotNil(t, mgr.Store())
}

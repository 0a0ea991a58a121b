package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/reorder/internal/logging"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
)

// ErrLockFailed is returned when the distributed trace lock cannot be taken.
var ErrLockFailed = errors.New("failed to acquire distributed lock")

// DefaultLockTTL bounds how long a distributed trace lock is held.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates trace access. Unused lock entries are dropped by
// reference counting.
type Manager struct {
	store ports.TraceStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock lifetime.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		m.lockTTL = ttl
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a Manager over store.
func NewManager(store ports.TraceStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = logging.NewNop()
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller locks entry.mu and calls release after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// Load retrieves a trace.
func (m *Manager) Load(ctx context.Context, id string) (*domain.Trace, error) {
	var tr *domain.Trace
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		tr, err = m.store.Load(ctx, id)
		return err
	})
	return tr, err
}

// Save persists a trace under its ID.
func (m *Manager) Save(ctx context.Context, tr *domain.Trace) error {
	return m.WithLock(ctx, tr.ID, func(ctx context.Context) error {
		return m.store.Save(ctx, tr)
	})
}

// Update loads id, applies fn and saves the result, all under the trace
// lock. Nothing is saved when fn fails.
func (m *Manager) Update(ctx context.Context, id string, fn func(*domain.Trace) error) (*domain.Trace, error) {
	var tr *domain.Trace
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		if tr, err = m.store.Load(ctx, id); err != nil {
			return err
		}
		if err := fn(tr); err != nil {
			return err
		}
		if tr.ID != id {
			return fmt.Errorf("%w: update changed id %q to %q", domain.ErrInvalidTrace, id, tr.ID)
		}
		return m.store.Save(ctx, tr)
	})
	if err != nil {
		return nil, err
	}
	return tr, nil
}

// Delete removes the trace from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying trace store.
func (m *Manager) Store() ports.TraceStore {
	return m.store
}

// WithLock executes fn while holding the lock for the trace.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, "trace:"+id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLockFailed, err)
		}
		defer func() {
			// Release even when ctx was cancelled mid-update.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"trace_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

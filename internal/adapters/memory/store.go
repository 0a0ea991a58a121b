package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/reorder/pkg/domain"
)

// Store implements ports.TraceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Trace
	mu   sync.RWMutex
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		data: make(map[string]*domain.Trace),
	}
}

// Save stores a copy of the trace.
func (s *Store) Save(ctx context.Context, trace *domain.Trace) error {
	if err := domain.ValidateTraceID(trace.ID); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[trace.ID] = trace.Clone()
	return nil
}

// Load returns a copy so callers can't mutate the stored trace.
func (s *Store) Load(ctx context.Context, id string) (*domain.Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	trace, ok := s.data[id]
	if !ok {
		return nil, domain.ErrTraceNotFound
	}
	return trace.Clone(), nil
}

// Delete removes the trace.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored trace IDs in lexical order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

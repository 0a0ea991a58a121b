package ports

import (
	"context"

	"github.com/aretw0/reorder/pkg/domain"
)

// TraceStore defines the interface for persisting recorded gesture traces.
type TraceStore interface {
	// Save persists the trace under trace.ID.
	Save(ctx context.Context, trace *domain.Trace) error

	// Load retrieves a trace.
	// Returns domain.ErrTraceNotFound if the trace does not exist.
	Load(ctx context.Context, id string) (*domain.Trace, error)

	// Delete removes a trace. Deleting a missing trace is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of all stored traces.
	List(ctx context.Context) ([]string, error)
}

package middleware

import (
	"context"
	"fmt"
	"regexp"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
)

// Mask replaces a redacted trace name.
const Mask = "***"

type redactionMiddleware struct {
	next     ports.TraceStore
	patterns []*regexp.Regexp
}

// NewRedactionMiddleware masks item IDs and trace names matching any of
// patterns before they reach the store. Masked items are renamed
// "redacted-N" so the trace still replays to the same outcome.
func NewRedactionMiddleware(patterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("redaction pattern %q: %w", p, err)
		}
		compiled[i] = re
	}
	return func(next ports.TraceStore) ports.TraceStore {
		return &redactionMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *redactionMiddleware) Save(ctx context.Context, trace *domain.Trace) error {
	// The caller keeps its unmasked trace.
	cloned := trace.Clone()
	if m.matches(cloned.Name) {
		cloned.Name = Mask
	}

	renamed := make(map[string]string)
	for i := range cloned.Items {
		id := cloned.Items[i].ID
		if m.matches(id) {
			alias := fmt.Sprintf("redacted-%d", i)
			renamed[id] = alias
			cloned.Items[i].ID = alias
		}
	}
	for i := range cloned.Events {
		if alias, ok := renamed[cloned.Events[i].Item]; ok {
			cloned.Events[i].Item = alias
		}
	}
	return m.next.Save(ctx, cloned)
}

func (m *redactionMiddleware) matches(s string) bool {
	if s == "" {
		return false
	}
	for _, p := range m.patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}

func (m *redactionMiddleware) Load(ctx context.Context, id string) (*domain.Trace, error) {
	return m.next.Load(ctx, id)
}

func (m *redactionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

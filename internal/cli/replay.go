package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/reorder/internal/adapters/file"
	"github.com/aretw0/reorder/internal/presentation/graph"
	"github.com/aretw0/reorder/internal/presentation/tui"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/aretw0/reorder/pkg/runner"
	"golang.org/x/term"
)

// Reporter writes a replay result.
type Reporter interface {
	Report(res *runner.Result) error
}

// ReplayOptions selects the trace and how the result is shown.
type ReplayOptions struct {
	// Source is a trace file path or a stored trace ID.
	Source  string
	JSON    bool
	Mermaid bool
}

// NewReporter picks JSON when asked, plain markdown when w is not a
// terminal and styled markdown otherwise.
func NewReporter(w io.Writer, jsonMode bool) Reporter {
	switch {
	case jsonMode:
		return runner.NewJSONReporter(w)
	case !IsTerminal(w):
		return runner.NewTextReporter(w)
	}
	return runner.NewTextReporter(w, runner.WithRenderer(tui.NewRenderer()))
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// LoadTrace reads src as a file when one exists at that path and falls
// back to the store otherwise.
func LoadTrace(ctx context.Context, store ports.TraceStore, src string) (*domain.Trace, error) {
	if _, err := os.Stat(src); err == nil {
		return readTraceFile(src)
	}
	if store == nil {
		return nil, fmt.Errorf("%s: %w", src, domain.ErrTraceNotFound)
	}
	return store.Load(ctx, src)
}

// Replay runs the trace and reports the result to w.
func Replay(ctx context.Context, r *runner.Runner, store ports.TraceStore, w io.Writer, opts ReplayOptions) (*runner.Result, error) {
	tr, err := LoadTrace(ctx, store, opts.Source)
	if err != nil {
		return nil, err
	}
	res, err := r.Run(ctx, tr)
	if err != nil {
		return nil, err
	}
	if opts.Mermaid {
		_, err = io.WriteString(w, graph.GenerateMermaid(graph.GestureMachine(), graph.OverlayFromResult(res)))
		return res, err
	}
	return res, NewReporter(w, opts.JSON).Report(res)
}

// ImportTrace copies a trace file into the store. The trace keeps its own
// ID, or takes the file name when it has none.
func ImportTrace(ctx context.Context, store ports.TraceStore, path string) (string, error) {
	tr, err := readTraceFile(path)
	if err != nil {
		return "", err
	}
	if tr.CreatedAt.IsZero() {
		tr.CreatedAt = time.Now().UTC()
	}
	if err := tr.Validate(); err != nil {
		return "", err
	}
	if err := store.Save(ctx, tr); err != nil {
		return "", err
	}
	return tr.ID, nil
}

// readTraceFile names an ID-less trace after its file.
func readTraceFile(path string) (*domain.Trace, error) {
	tr, err := file.ReadTraceFile(path)
	if err != nil {
		return nil, err
	}
	if tr.ID == "" {
		base := filepath.Base(path)
		tr.ID = base[:len(base)-len(filepath.Ext(base))]
	}
	return tr, nil
}

// DeleteTrace removes id, reporting a missing trace as not found.
func DeleteTrace(ctx context.Context, store ports.TraceStore, id string) error {
	if _, err := store.Load(ctx, id); err != nil {
		if errors.Is(err, domain.ErrTraceNotFound) {
			return fmt.Errorf("%s: %w", id, err)
		}
		return err
	}
	return store.Delete(ctx, id)
}

package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/aretw0/reorder/internal/presentation/tui"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/ports"
	"github.com/gdamore/tcell/v2"
)

// DefaultLabels fill the demo list when none are given.
var DefaultLabels = []string{"alpha", "bravo", "charlie", "delta", "echo", "foxtrot"}

// DemoOptions configures the interactive list.
type DemoOptions struct {
	Labels []string
	Config domain.Config
	// Record saves the session under this trace ID when set.
	Record string
	Logger *slog.Logger
}

// RunDemo shows an interactive list on screen until the user quits. When
// opts.Record is set the session is saved to store. screen may be nil to
// use the process terminal.
func RunDemo(ctx context.Context, screen tcell.Screen, store ports.TraceStore, w io.Writer, opts DemoOptions) error {
	if len(opts.Labels) == 0 {
		opts.Labels = DefaultLabels
	}
	if opts.Config == (domain.Config{}) {
		opts.Config = domain.DefaultConfig()
	}
	if opts.Record != "" {
		if err := domain.ValidateTraceID(opts.Record); err != nil {
			return err
		}
		if store == nil {
			return fmt.Errorf("--record needs a trace store")
		}
	}
	if screen == nil {
		var err error
		if screen, err = tcell.NewScreen(); err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
	}

	viewOpts := []tui.ListViewOption{tui.WithEngineConfig(opts.Config)}
	if opts.Logger != nil {
		viewOpts = append(viewOpts, tui.WithViewLogger(opts.Logger))
	}
	if opts.Record != "" {
		viewOpts = append(viewOpts, tui.WithRecording(opts.Record))
	}
	view, err := tui.NewListView(screen, opts.Labels, viewOpts...)
	if err != nil {
		screen.Fini()
		return err
	}
	runErr := view.Run(ctx)
	screen.Fini()
	if runErr != nil && ctx.Err() == nil {
		return runErr
	}

	tui.PrintBanner(w)
	fmt.Fprintf(w, "Final order: %s\n", strings.Join(view.Order(), ", "))

	if tr := view.Recorded(); tr != nil {
		if len(tr.Events) == 0 {
			fmt.Fprintln(w, "Nothing recorded.")
			return nil
		}
		if err := store.Save(context.WithoutCancel(ctx), tr); err != nil {
			return fmt.Errorf("saving %s: %w", tr.ID, err)
		}
		fmt.Fprintf(w, "Recorded %d events as %q.\n", len(tr.Events), tr.ID)
	}
	return nil
}

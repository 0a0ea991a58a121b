package tui

import (
	"github.com/aretw0/reorder/pkg/runner"
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a markdown renderer backed by glamour. It falls back
// to plain markdown when no terminal style can be built.
func NewRenderer() runner.ContentRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return func(markdown string) (string, error) { return markdown, nil }
	}
	return r.Render
}

package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the reorder banner to w.
func PrintBanner(w io.Writer) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{"  ___ ___ ___  ___ ___  ___ ___ ", "#818cf8"},
		{" | _ \\ __/ _ \\| _ \\   \\| __| _ \\", "#a78bfa"},
		{" |   / _| (_) |   / |) | _||   /", "#e879f9"},
		{" |_|_\\___\\___/|_|_\\___/|___|_|_\\", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w)
}

package runner

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// ContentRenderer turns a markdown report into terminal output.
type ContentRenderer func(markdown string) (string, error)

// TextReporter writes a human readable summary of a Result.
type TextReporter struct {
	Writer   io.Writer
	Renderer ContentRenderer
}

// TextReporterOption defines configuration for TextReporter.
type TextReporterOption func(*TextReporter)

// WithRenderer configures the content renderer.
func WithRenderer(renderer ContentRenderer) TextReporterOption {
	return func(r *TextReporter) {
		r.Renderer = renderer
	}
}

// NewTextReporter creates a reporter writing to w, stdout when nil.
func NewTextReporter(w io.Writer, opts ...TextReporterOption) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	r := &TextReporter{Writer: w}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Report renders res. Without a renderer the markdown is written as is.
func (r *TextReporter) Report(res *Result) error {
	md := Markdown(res)
	if r.Renderer != nil {
		out, err := r.Renderer(md)
		if err != nil {
			return fmt.Errorf("render report: %w", err)
		}
		md = out
	}
	_, err := io.WriteString(r.Writer, md)
	return err
}

// Markdown formats res as a short markdown document.
func Markdown(res *Result) string {
	var b strings.Builder
	title := res.Name
	if title == "" {
		title = res.TraceID
	}
	fmt.Fprintf(&b, "# %s\n\n", title)
	fmt.Fprintf(&b, "**Outcome:** %s  \n", res.Outcome)
	fmt.Fprintf(&b, "**Final state:** %s\n\n", res.FinalState)

	if res.Detail != nil {
		fmt.Fprintf(&b, "Moved `%s` from %d to splice %d.\n\n", res.Moved, res.Detail.OriginalIndex, res.Detail.SpliceIndex)
	}
	if len(res.Intents) > 0 {
		b.WriteString("| intent | prevented |\n|---|---|\n")
		for _, i := range res.Intents {
			fmt.Fprintf(&b, "| %s | %t |\n", i.Intent, i.Prevented)
		}
		b.WriteString("\n")
	}
	if len(res.Aborts) > 0 {
		reasons := make([]string, len(res.Aborts))
		for i, a := range res.Aborts {
			reasons[i] = string(a)
		}
		fmt.Fprintf(&b, "Aborted: %s\n\n", strings.Join(reasons, ", "))
	}
	fmt.Fprintf(&b, "Order: %s\n", strings.Join(res.Order, " "))
	return b.String()
}

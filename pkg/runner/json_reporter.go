package runner

import (
	"encoding/json"
	"io"
	"os"
)

// JSONReporter writes one JSON line per Result.
type JSONReporter struct {
	Encoder *json.Encoder
}

// NewJSONReporter creates a reporter writing to w, stdout when nil.
func NewJSONReporter(w io.Writer) *JSONReporter {
	if w == nil {
		w = os.Stdout
	}
	return &JSONReporter{Encoder: json.NewEncoder(w)}
}

// Report encodes res as a single line.
func (r *JSONReporter) Report(res *Result) error {
	return r.Encoder.Encode(res)
}

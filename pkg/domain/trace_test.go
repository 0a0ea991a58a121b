package domain

import (
	"errors"
	"testing"
)

func validTrace() *Trace {
	return &Trace{
		ID:     "t1",
		Layout: Layout{ViewportHeight: 600},
		Items:  []ItemSpec{{ID: "a", Height: 50}, {ID: "b", Height: 50}},
		Events: []TraceEvent{
			{Kind: TraceDown, Item: "a", Y: 25},
			{Kind: TraceUp, AtMS: 40},
		},
	}
}

func TestTraceValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Trace)
		wantErr bool
	}{
		{"valid", func(*Trace) {}, false},
		{"no viewport", func(tr *Trace) { tr.Layout.ViewportHeight = 0 }, true},
		{"no items", func(tr *Trace) { tr.Items = nil }, true},
		{"duplicate item", func(tr *Trace) { tr.Items[1].ID = "a" }, true},
		{"flat item", func(tr *Trace) { tr.Items[0].Height = 0 }, true},
		{"unknown kind", func(tr *Trace) { tr.Events[0].Kind = "wiggle" }, true},
		{"time travel", func(tr *Trace) { tr.Events[1].AtMS = -1 }, true},
		{"unknown target", func(tr *Trace) { tr.Events[0].Item = "zzz" }, true},
		{"missing id", func(tr *Trace) { tr.ID = "" }, true},
		{"path in id", func(tr *Trace) { tr.ID = "../etc/passwd" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := validTrace()
			tt.mutate(tr)
			err := tr.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidTrace) {
					t.Fatalf("expected ErrInvalidTrace, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateTraceID(t *testing.T) {
	for _, ok := range []string{"t1", "drag-up_2", "v1.2"} {
		if err := ValidateTraceID(ok); err != nil {
			t.Errorf("%q: unexpected error %v", ok, err)
		}
	}
	for _, bad := range []string{"", ".hidden", "a/b", "a b", "é", string(make([]byte, MaxTraceIDLength+1))} {
		if err := ValidateTraceID(bad); !errors.Is(err, ErrInvalidTrace) {
			t.Errorf("%q: expected ErrInvalidTrace, got %v", bad, err)
		}
	}
}

package tui

import (
	"context"
	"log/slog"
	"math"

	"github.com/aretw0/reorder"
	"github.com/aretw0/reorder/internal/clock"
	"github.com/aretw0/reorder/internal/dom"
	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/runner"
	"github.com/gdamore/tcell/v2"
)

// Terminal cells are mapped to pixels at these scales so the engine's
// thresholds feel the same as on a touch screen.
const (
	CellHeight = 16.0
	CellWidth  = 8.0
	// RowCells is how many terminal rows each item occupies.
	RowCells = 2
)

// ListView hosts an engine on a tcell screen: mouse input drives gestures,
// engine timers run on the screen's event queue.
type ListView struct {
	screen   tcell.Screen
	doc      *dom.Document
	list     *dom.List
	engine   *reorder.Engine
	recorder *runner.Recorder
	sched    *clock.Posted
	logger   *slog.Logger
	pressed  bool
	status   string
}

// ListViewOption configures a ListView.
type ListViewOption func(*listViewConfig)

type listViewConfig struct {
	cfg      domain.Config
	logger   *slog.Logger
	recordID string
}

// WithEngineConfig sets the engine thresholds.
func WithEngineConfig(cfg domain.Config) ListViewOption {
	return func(c *listViewConfig) { c.cfg = cfg }
}

// WithViewLogger sets the logger.
func WithViewLogger(l *slog.Logger) ListViewOption {
	return func(c *listViewConfig) { c.logger = l }
}

// WithRecording captures the session as a trace with the given ID.
func WithRecording(id string) ListViewOption {
	return func(c *listViewConfig) { c.recordID = id }
}

// NewListView lays out labels on an initialized screen.
func NewListView(screen tcell.Screen, labels []string, opts ...ListViewOption) (*ListView, error) {
	c := listViewConfig{cfg: domain.DefaultConfig(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&c)
	}

	w, h := screen.Size()
	v := &ListView{
		screen: screen,
		doc:    dom.NewDocument(float64(w)*CellWidth, float64(h)*CellHeight),
		logger: c.logger,
		status: "hold an item to pick it up, q to quit",
	}
	v.list = v.doc.NewList(CellHeight, 0)
	items := make([]domain.ItemSpec, 0, len(labels))
	for _, label := range labels {
		v.list.Append(label, RowCells*CellHeight)
		items = append(items, domain.ItemSpec{ID: label, Height: RowCells * CellHeight})
	}
	if c.recordID != "" {
		layout := domain.Layout{
			ViewportHeight: v.doc.Height(),
			ListTop:        CellHeight,
			Width:          v.doc.Width(),
		}
		v.recorder = runner.NewRecorder(c.recordID, layout, items)
	}

	v.sched = clock.NewPosted(func(fn func()) bool {
		return screen.PostEvent(tcell.NewEventInterrupt(fn)) == nil
	})
	v.engine = reorder.New(
		reorder.WithName("tui"),
		reorder.WithConfig(c.cfg),
		reorder.WithScheduler(v.sched),
		reorder.WithLogger(c.logger),
	)
	v.engine.On(domain.IntentReorder, func(i *domain.Intent) {
		if err := v.list.MoveBefore(i.Target, i.InsertBefore); err != nil {
			v.logger.Warn("reorder not applied", "err", err)
		}
		v.status = "moved"
	})
	v.engine.On(domain.IntentTap, func(i *domain.Intent) {
		if it, ok := i.Target.(*dom.Item); ok {
			v.status = "tapped " + it.ID()
		}
	})
	if err := v.engine.Attach(v.list); err != nil {
		return nil, err
	}
	v.doc.OnFocusChange(v.engine.HandleFocusChange)
	return v, nil
}

// Order returns the current item order.
func (v *ListView) Order() []string { return v.list.Order() }

// Recorded returns the captured trace, or nil when recording is off.
func (v *ListView) Recorded() *domain.Trace {
	if v.recorder == nil {
		return nil
	}
	return v.recorder.Trace()
}

// Run processes screen events until q, Ctrl-C or ctx is done.
func (v *ListView) Run(ctx context.Context) error {
	v.screen.EnableMouse(tcell.MouseDragEvents)
	v.screen.EnableFocus()
	defer v.engine.Detach()

	go func() {
		<-ctx.Done()
		_ = v.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}()

	v.draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return nil
		}
		switch ev := ev.(type) {
		case *tcell.EventInterrupt:
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if fn, ok := ev.Data().(func()); ok {
				fn()
			}
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyCtrlC, ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				return nil
			case ev.Key() == tcell.KeyEscape:
				v.engine.Cancel()
				v.record(domain.TraceEvent{Kind: domain.TraceAbort})
				v.status = "canceled"
			}
		case *tcell.EventMouse:
			v.onMouse(ev)
		case *tcell.EventFocus:
			if !ev.Focused {
				v.engine.HandleBlur()
				v.record(domain.TraceEvent{Kind: domain.TraceBlur})
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			v.doc.Resize(float64(w)*CellWidth, float64(h)*CellHeight)
			v.screen.Sync()
		}
		v.draw()
	}
}

func (v *ListView) onMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	pe := domain.PointerEvent{
		Source: domain.SourceMouse,
		Point:  domain.Point{X: (float64(x) + 0.5) * CellWidth, Y: (float64(y) + 0.5) * CellHeight},
		Time:   ev.When(),
	}
	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !v.pressed:
		pe.Kind = domain.PointerDown
		pe.Target = v.list
		if it := v.list.ElementAt(pe.Point); it != nil {
			pe.Target = it
		}
	case down:
		pe.Kind = domain.PointerMove
	case v.pressed:
		pe.Kind = domain.PointerUp
	default:
		return
	}
	v.pressed = down
	v.engine.Handle(pe)

	item := ""
	if it, ok := pe.Target.(*dom.Item); ok {
		item = it.ID()
	}
	if v.recorder != nil {
		v.recorder.RecordPointer(pe, item)
	}
}

func (v *ListView) record(ev domain.TraceEvent) {
	if v.recorder != nil {
		v.recorder.Record(v.sched.Now(), ev)
	}
}

func (v *ListView) draw() {
	v.screen.Clear()
	w, h := v.screen.Size()
	base := tcell.StyleDefault
	var lifted *dom.Item
	for _, it := range v.list.Items() {
		if it.HasClass(domain.ClassDragging) {
			lifted = it
			continue
		}
		v.drawItem(it, base.Foreground(tcell.ColorSilver), w, h)
	}
	// The dragged item is drawn last so it floats over its siblings.
	if lifted != nil {
		style := base.Reverse(true)
		if lifted.HasClass(domain.ClassShadow) {
			style = style.Bold(true)
		}
		v.drawItem(lifted, style, w, h)
	}
	status := v.engine.State().String() + "  " + v.status
	puts(v.screen, 0, h-1, base.Dim(true), status)
	v.screen.Show()
}

func (v *ListView) drawItem(it *dom.Item, style tcell.Style, w, h int) {
	row := int(math.Round(it.ClientRect().Top / CellHeight))
	for dy := 0; dy < RowCells; dy++ {
		if row+dy >= 0 && row+dy < h-1 {
			fill(v.screen, row+dy, w, style)
		}
	}
	if row >= 0 && row < h-1 {
		puts(v.screen, 2, row, style, it.ID())
	}
}

func fill(s tcell.Screen, row, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		s.SetContent(x, row, ' ', nil, style)
	}
}

func puts(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

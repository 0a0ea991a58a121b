package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/reorder/pkg/domain"
	"github.com/aretw0/reorder/pkg/runner"
)

// Shape selects how a node is drawn.
type Shape int

const (
	ShapeBox Shape = iota
	// ShapeStart is a circle.
	ShapeStart
	// ShapeActive is a subroutine box, used for the drag state.
	ShapeActive
	// ShapeOutcome is a parallelogram.
	ShapeOutcome
)

// Edge is a labeled transition to another node.
type Edge struct {
	To    string
	Label string
	// Interrupt edges are drawn dotted.
	Interrupt bool
}

// Node is one box in the diagram.
type Node struct {
	ID    string
	Shape Shape
	Edges []Edge
}

// Overlay marks the path a replay took.
type Overlay struct {
	Visited []string
	Current string
}

// Outcome node IDs.
const (
	NodeTap      = "tap"
	NodeScroll   = "scroll"
	NodeDrop     = "drop"
	NodeCanceled = "canceled"
)

// GestureMachine returns the gesture state machine with its outcomes.
func GestureMachine() []Node {
	idle := domain.StateIdle.String()
	undecided := domain.StateUndecided.String()
	reorder := domain.StateReorder.String()
	return []Node{
		{ID: idle, Shape: ShapeStart, Edges: []Edge{{To: undecided, Label: "down"}}},
		{ID: undecided, Edges: []Edge{
			{To: NodeTap, Label: "up"},
			{To: NodeScroll, Label: "|dy| > scroll_abandon_y"},
			{To: reorder, Label: "hold_delay"},
			{To: NodeCanceled, Label: "interrupt", Interrupt: true},
		}},
		{ID: reorder, Shape: ShapeActive, Edges: []Edge{
			{To: reorder, Label: "move"},
			{To: NodeDrop, Label: "up"},
			{To: NodeCanceled, Label: "interrupt", Interrupt: true},
		}},
		{ID: NodeTap, Shape: ShapeOutcome, Edges: []Edge{{To: idle}}},
		{ID: NodeScroll, Shape: ShapeOutcome, Edges: []Edge{{To: idle}}},
		{ID: NodeDrop, Shape: ShapeOutcome, Edges: []Edge{{To: idle}}},
		{ID: NodeCanceled, Shape: ShapeOutcome, Edges: []Edge{{To: idle}}},
	}
}

// OverlayFromResult highlights the states a replay entered and where it ended.
func OverlayFromResult(res *runner.Result) *Overlay {
	o := &Overlay{Visited: []string{domain.StateIdle.String()}}
	for _, s := range res.States {
		o.Visited = append(o.Visited, s.String())
	}
	switch res.Outcome {
	case runner.OutcomeTap:
		o.Current = NodeTap
	case runner.OutcomeScroll:
		o.Current = NodeScroll
	case runner.OutcomeReorder:
		o.Current = NodeDrop
	case runner.OutcomeCanceled:
		o.Current = NodeCanceled
	default:
		o.Current = res.FinalState.String()
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart from nodes, styling the
// overlay's visited and current nodes when one is given.
func GenerateMermaid(nodes []Node, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, node := range nodes {
		safeID := sanitizeMermaidID(node.ID)

		opener, closer := "[", "]"
		switch node.Shape {
		case ShapeStart:
			opener, closer = "((", "))"
		case ShapeActive:
			opener, closer = "[[", "]]"
		case ShapeOutcome:
			opener, closer = "[/", "/]"
		}
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, node.ID, closer)

		for _, e := range node.Edges {
			safeTo := sanitizeMermaidID(e.To)
			arrow := "-->"
			if e.Interrupt {
				arrow = "-.->"
			}
			if e.Label != "" {
				label := strings.ReplaceAll(e.Label, "\"", "'")
				arrow = fmt.Sprintf("-- \"%s\" -->", label)
				if e.Interrupt {
					arrow = fmt.Sprintf("-. \"%s\" .->", label)
				}
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", safeID, arrow, safeTo)
		}
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills in both themes.
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Visited {
			safeID := sanitizeMermaidID(id)
			if !seen[safeID] && safeID != "" {
				seen[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(overlay.Current))
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

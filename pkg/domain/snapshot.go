package domain

import "fmt"

// Sibling is a frozen pre-drag measurement of one element sibling.
type Sibling struct {
	Node Element
	// Base is the sibling's transform before the drag began.
	Base Transform
	// Pos is the signed distance from the dragged node's center to the
	// sibling's nearest edge. Negative for siblings above the node.
	Pos float64
}

// Snapshot captures sibling positions at drag start. Positions are
// never recomputed mid-gesture.
type Snapshot struct {
	// Zero is the dragged node's pre-drag vertical center.
	Zero float64
	// Height is the frozen outer height of the dragged node.
	Height   float64
	Siblings []Sibling
}

// SiblingPos measures a sibling against the zero point. Siblings above the
// zero point are measured from their bottom edge, the rest from their top.
func SiblingPos(top, height, zero float64) float64 {
	if top < zero {
		top += height
	}
	return top - zero
}

// NewSnapshot builds a snapshot from siblings in document order.
func NewSnapshot(zero, height float64, siblings []Sibling) Snapshot {
	return Snapshot{Zero: zero, Height: height, Siblings: siblings}
}

// SpliceIndex returns where the dragged node lands among the other
// siblings for a vertical displacement dy. Moving up, the node lands before
// the first sibling whose position is at or below dy. Moving down (or not
// at all), it lands after the last sibling whose position is above dy.
// The result is in [0, len(Siblings)] and is monotonic in dy.
func (s Snapshot) SpliceIndex(dy float64) int {
	if dy < 0 {
		for i, sib := range s.Siblings {
			if sib.Pos >= dy {
				return i
			}
		}
		return len(s.Siblings)
	}
	for i := len(s.Siblings) - 1; i >= 0; i-- {
		if s.Siblings[i].Pos < dy {
			return i + 1
		}
	}
	return 0
}

// OriginalIndex is the number of siblings above the dragged node.
func (s Snapshot) OriginalIndex() int {
	n := 0
	for _, sib := range s.Siblings {
		if sib.Pos < 0 {
			n++
		}
	}
	return n
}

// Offsets returns the preview shift for every sibling at displacement dy.
// Siblings the node has passed on the way up move down by the node height,
// siblings passed on the way down move up by it, the rest stay put.
func (s Snapshot) Offsets(dy float64) []float64 {
	out := make([]float64, len(s.Siblings))
	splice, origin := s.SpliceIndex(dy), s.OriginalIndex()
	for i := splice; i < origin; i++ {
		out[i] = s.Height
	}
	for i := origin; i < splice; i++ {
		out[i] = -s.Height
	}
	return out
}

// InsertBefore returns the sibling the node should precede when dropped at
// splice, or nil when it goes last.
func (s Snapshot) InsertBefore(splice int) Element {
	if splice < 0 || splice >= len(s.Siblings) {
		return nil
	}
	return s.Siblings[splice].Node
}

// SnapshotFromPositions builds a detached snapshot from sibling positions
// alone, for computing splice indices without a live list. Positions must
// be in ascending order.
func SnapshotFromPositions(positions []float64) (Snapshot, error) {
	siblings := make([]Sibling, len(positions))
	for i, p := range positions {
		if i > 0 && p < positions[i-1] {
			return Snapshot{}, fmt.Errorf("%w: position %d (%g) is below its predecessor", ErrUnsortedPositions, i, p)
		}
		siblings[i] = Sibling{Pos: p}
	}
	return Snapshot{Siblings: siblings}, nil
}

package domain

// IntentType names the notifications published to listeners.
type IntentType string

const (
	// IntentBeforeWait fires on entering undecided. Preventing it skips the hold delay.
	IntentBeforeWait IntentType = "before-wait"
	// IntentBeforeReorder fires right before a drag starts. Preventing it vetoes the drag.
	IntentBeforeReorder IntentType = "before-reorder"
	// IntentReorder fires on drop with the computed splice index.
	IntentReorder IntentType = "reorder"
	// IntentTap fires when the pointer is released without a drag.
	IntentTap IntentType = "tap"
)

// ReorderDetail is the payload of a reorder intent.
type ReorderDetail struct {
	SpliceIndex   int `json:"splice_index"`
	OriginalIndex int `json:"original_index"`
}

// Intent is a cancelable notification dispatched to the host.
type Intent struct {
	Type   IntentType
	Target Element
	// InsertBefore is the sibling the dragged node should precede, nil for the end.
	InsertBefore Element
	Detail       *ReorderDetail

	prevented bool
}

// NewIntent builds an intent targeted at el.
func NewIntent(t IntentType, el Element) *Intent {
	return &Intent{Type: t, Target: el}
}

// PreventDefault marks the intent as vetoed.
func (i *Intent) PreventDefault() { i.prevented = true }

// DefaultPrevented reports whether any listener vetoed the intent.
func (i *Intent) DefaultPrevented() bool { return i.prevented }

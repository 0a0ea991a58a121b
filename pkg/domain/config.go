package domain

import "time"

// Config tunes the gesture classifier. The zero value is not usable; start
// from DefaultConfig.
type Config struct {
	// Raised adds the shadow class to the dragged node.
	Raised bool `mapstructure:"raised" json:"raised" yaml:"raised"`
	// DraggingClassName is an extra class applied while dragging.
	DraggingClassName string `mapstructure:"dragging_class" json:"dragging_class,omitempty" yaml:"dragging_class,omitempty"`
	// KeepFocus focuses the dragged node on pickup and the container on drop.
	KeepFocus bool `mapstructure:"keep_focus" json:"keep_focus" yaml:"keep_focus"`

	HoldDelay      time.Duration `mapstructure:"hold_delay" json:"hold_delay" yaml:"hold_delay"`
	LeaveGrace     time.Duration `mapstructure:"leave_grace" json:"leave_grace" yaml:"leave_grace"`
	SampleInterval time.Duration `mapstructure:"sample_interval" json:"sample_interval" yaml:"sample_interval"`
	DropDuration   time.Duration `mapstructure:"drop_duration" json:"drop_duration" yaml:"drop_duration"`

	// HoldSlopX and HoldSlopY bound the drift tolerated before the hold fires.
	HoldSlopX float64 `mapstructure:"hold_slop_x" json:"hold_slop_x" yaml:"hold_slop_x"`
	HoldSlopY float64 `mapstructure:"hold_slop_y" json:"hold_slop_y" yaml:"hold_slop_y"`
	// ScrollAbandonY is the vertical travel that turns an undecided gesture into a scroll.
	ScrollAbandonY float64 `mapstructure:"scroll_abandon_y" json:"scroll_abandon_y" yaml:"scroll_abandon_y"`
	// HorizontalBias is the ratio above which movement counts as sideways.
	HorizontalBias float64 `mapstructure:"horizontal_bias" json:"horizontal_bias" yaml:"horizontal_bias"`
	// AutoscrollZone is the edge band that triggers autoscroll, also the max step.
	AutoscrollZone float64 `mapstructure:"autoscroll_zone" json:"autoscroll_zone" yaml:"autoscroll_zone"`

	SiblingTransition string `mapstructure:"sibling_transition" json:"sibling_transition" yaml:"sibling_transition"`
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		Raised:            true,
		KeepFocus:         true,
		HoldDelay:         300 * time.Millisecond,
		LeaveGrace:        700 * time.Millisecond,
		SampleInterval:    100 * time.Millisecond,
		DropDuration:      100 * time.Millisecond,
		HoldSlopX:         15,
		HoldSlopY:         25,
		ScrollAbandonY:    20,
		HorizontalBias:    1.2,
		AutoscrollZone:    40,
		SiblingTransition: "transform 0.2s ease-in-out",
	}
}

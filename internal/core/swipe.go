package core

// SwipeTracker turns press/release pairs from a pointer or touch device into
// lane and jump actions. Coordinates are in device units (cells for the
// terminal, pixels for a window) with Y growing downwards, as both frontends
// report them.
type SwipeTracker struct {
	Threshold float64

	startX, startY float64
	pressed        bool
}

// NewSwipeTracker creates a tracker that ignores drags shorter than threshold.
func NewSwipeTracker(threshold float64) *SwipeTracker {
	return &SwipeTracker{Threshold: threshold}
}

// Press records the start of a drag.
func (t *SwipeTracker) Press(x, y float64) {
	t.startX, t.startY = x, y
	t.pressed = true
}

// Pressed reports whether a drag is in progress.
func (t *SwipeTracker) Pressed() bool {
	return t.pressed
}

// Cancel forgets a drag in progress.
func (t *SwipeTracker) Cancel() {
	t.pressed = false
}

// Release ends a drag and classifies it.
//
// A mostly horizontal drag longer than the threshold is a lane change; a
// mostly vertical upward drag longer than the threshold is a jump. Short drags
// and downward drags return ActionNone. The second result is true when the
// drag was short enough to count as a tap.
func (t *SwipeTracker) Release(x, y float64) (Action, bool) {
	if !t.pressed {
		return ActionNone, false
	}
	t.pressed = false

	dx := x - t.startX
	up := t.startY - y

	if absF(dx) > absF(up) {
		if absF(dx) > t.Threshold {
			if dx > 0 {
				return ActionRight, false
			}
			return ActionLeft, false
		}
	} else if absF(up) > t.Threshold {
		if up > 0 {
			return ActionJump, false
		}
		return ActionNone, false
	}

	return ActionNone, true
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

package core

// Action represents a semantic game action, abstracted from physical key presses.
// Frontends translate keys, pointer drags and touches into actions; the game
// only ever sees actions.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // A, Left arrow, swipe left - move one lane left
	ActionRight          // D, Right arrow, swipe right - move one lane right
	ActionJump           // Space, W, Up, swipe up - jump while grounded
	ActionConfirm        // Enter, click, tap - advance intro panels
	ActionRestart        // R - restart after stumble or game over
	ActionPause          // P, Escape - pause/unpause the run
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionJump:
		return "Jump"
	case ActionConfirm:
		return "Confirm"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Axis groups actions that compete with each other within one frame.
type Axis int

const (
	AxisNone Axis = iota
	AxisLateral
	AxisVertical
)

// Axis reports which input axis the action belongs to.
func (a Action) Axis() Axis {
	switch a {
	case ActionLeft, ActionRight:
		return AxisLateral
	case ActionJump:
		return AxisVertical
	default:
		return AxisNone
	}
}

// Source identifies the device an action came from.
type Source int

const (
	SourceKeyboard Source = iota
	SourcePointer
	SourceTouch
)

func (s Source) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourcePointer:
		return "pointer"
	case SourceTouch:
		return "touch"
	default:
		return "unknown"
	}
}

// InputFrame is the input for one simulation tick.
//
// Several sources may report during the same frame. For the lateral and
// vertical axes only the first event observed is kept, so a key press and a
// swipe arriving together never move the player two lanes.
type InputFrame struct {
	Actions map[Action]bool
	axes    map[Axis]Source
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		axes:    make(map[Axis]Source),
	}
}

// Set marks an action as triggered for this frame, attributed to the keyboard.
func (f *InputFrame) Set(a Action) {
	f.SetFrom(SourceKeyboard, a)
}

// SetFrom records an action from the given source. Axis actions are dropped
// when another action on the same axis was already recorded this frame.
// It reports whether the action was accepted.
func (f *InputFrame) SetFrom(src Source, a Action) bool {
	if a == ActionNone {
		return false
	}
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	if f.axes == nil {
		f.axes = make(map[Axis]Source)
	}

	if axis := a.Axis(); axis != AxisNone {
		if _, taken := f.axes[axis]; taken {
			return false
		}
		f.axes[axis] = src
	}
	f.Actions[a] = true
	return true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// SourceOf reports which source claimed the axis this frame.
func (f InputFrame) SourceOf(axis Axis) (Source, bool) {
	src, ok := f.axes[axis]
	return src, ok
}

// Lateral returns -1, 0 or +1 for the lane change requested this frame.
func (f InputFrame) Lateral() int {
	switch {
	case f.Has(ActionLeft):
		return -1
	case f.Has(ActionRight):
		return 1
	default:
		return 0
	}
}

// Empty reports whether no action was recorded.
func (f InputFrame) Empty() bool {
	return len(f.Actions) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.axes)
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.axes {
		clone.axes[k] = v
	}
	return clone
}

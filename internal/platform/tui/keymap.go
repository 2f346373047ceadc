package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neometro/internal/core"
)

// KeyMapper translates Bubble Tea key and mouse messages to game actions.
// This centralizes bindings and makes them testable.
type KeyMapper struct {
	swipe *core.SwipeTracker
}

// NewKeyMapper creates a key mapper. Mouse drags longer than swipeThreshold
// cells count as swipes.
func NewKeyMapper(swipeThreshold float64) *KeyMapper {
	return &KeyMapper{swipe: core.NewSwipeTracker(swipeThreshold)}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "left", "a":
		return core.ActionLeft, false
	case "right", "d":
		return core.ActionRight, false
	case " ", "up", "w":
		return core.ActionJump, false
	case "enter":
		return core.ActionConfirm, false
	case "p", "esc":
		return core.ActionPause, false
	case "r":
		return core.ActionRestart, false
	}
	return core.ActionNone, false
}

// MapKeyToFrame updates an input frame based on a key message.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame) bool {
	action, isQuit := km.MapKey(msg)
	if !isQuit {
		frame.SetFrom(core.SourceKeyboard, action)
	}
	return isQuit
}

// MapMouse feeds a mouse message to the swipe tracker. A left-button press
// starts a drag; the release classifies it. A short drag is a tap and
// confirms (advances the intro).
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Action {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			km.swipe.Press(float64(msg.X), float64(msg.Y))
		}
	case tea.MouseActionRelease:
		// Terminals often report releases without a button.
		action, tap := km.swipe.Release(float64(msg.X), float64(msg.Y))
		if tap {
			return core.ActionConfirm
		}
		return action
	}
	return core.ActionNone
}

// MapMouseToFrame records the action of a mouse message, if any.
func (km *KeyMapper) MapMouseToFrame(msg tea.MouseMsg, frame *core.InputFrame) {
	frame.SetFrom(core.SourcePointer, km.MapMouse(msg))
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

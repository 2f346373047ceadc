package gui

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/neometro/internal/core"
)

// keyBindings lists the keyboard bindings in the order they are polled.
var keyBindings = []struct {
	action core.Action
	keys   []ebiten.Key
}{
	{core.ActionLeft, []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft}},
	{core.ActionRight, []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight}},
	{core.ActionJump, []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}},
	{core.ActionConfirm, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}},
	{core.ActionRestart, []ebiten.Key{ebiten.KeyR}},
	{core.ActionPause, []ebiten.Key{ebiten.KeyP, ebiten.KeyEscape}},
	{core.ActionQuit, []ebiten.Key{ebiten.KeyQ}},
}

// inputReader polls Ebitengine once per tick and builds the input frame.
// Sources are read keyboard first, then mouse, then touch, so the first
// lateral and vertical events of a tick win in that order.
type inputReader struct {
	mouse    *core.SwipeTracker
	touch    *core.SwipeTracker
	touchID  ebiten.TouchID
	touchIDs []ebiten.TouchID
}

func newInputReader(swipeThreshold float64) *inputReader {
	return &inputReader{
		mouse: core.NewSwipeTracker(swipeThreshold),
		touch: core.NewSwipeTracker(swipeThreshold),
	}
}

// read fills frame with this tick's actions.
func (r *inputReader) read(frame *core.InputFrame) {
	for _, b := range keyBindings {
		for _, k := range b.keys {
			if inpututil.IsKeyJustPressed(k) {
				frame.SetFrom(core.SourceKeyboard, b.action)
				break
			}
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		r.mouse.Press(float64(x), float64(y))
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		frame.SetFrom(core.SourcePointer, swipeAction(r.mouse.Release(float64(x), float64(y))))
	}

	r.readTouch(frame)
}

// readTouch follows the first finger down and ignores the others.
func (r *inputReader) readTouch(frame *core.InputFrame) {
	if !r.touch.Pressed() {
		r.touchIDs = inpututil.AppendJustPressedTouchIDs(r.touchIDs[:0])
		if len(r.touchIDs) > 0 {
			r.touchID = r.touchIDs[0]
			x, y := ebiten.TouchPosition(r.touchID)
			r.touch.Press(float64(x), float64(y))
		}
		return
	}

	if inpututil.IsTouchJustReleased(r.touchID) {
		x, y := inpututil.TouchPositionInPreviousTick(r.touchID)
		frame.SetFrom(core.SourceTouch, swipeAction(r.touch.Release(float64(x), float64(y))))
	}
}

// swipeAction turns a classified drag into an action; a tap confirms.
func swipeAction(action core.Action, tap bool) core.Action {
	if tap {
		return core.ActionConfirm
	}
	return action
}

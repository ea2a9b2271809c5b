package game

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/raycast/internal/scene"
)

// heldKeys turns discrete terminal key presses into held state. A press
// counts as held until the hold window passes without a repeat.
type heldKeys struct {
	window time.Duration
	last   map[scene.Action]time.Time
	now    func() time.Time
}

func newHeldKeys(window time.Duration) *heldKeys {
	return &heldKeys{
		window: window,
		last:   make(map[scene.Action]time.Time),
		now:    time.Now,
	}
}

// Press records a press of a. The opposing action is released immediately so
// reversing direction does not wait out the hold window.
func (h *heldKeys) Press(a scene.Action) {
	h.last[a] = h.now()
	if opp, ok := opposite(a); ok {
		delete(h.last, opp)
	}
}

// Held implements scene.Input.
func (h *heldKeys) Held(a scene.Action) bool {
	t, ok := h.last[a]
	return ok && h.now().Sub(t) < h.window
}

// Reset releases every action.
func (h *heldKeys) Reset() {
	clear(h.last)
}

func opposite(a scene.Action) (scene.Action, bool) {
	switch a {
	case scene.ActionTurnLeft:
		return scene.ActionTurnRight, true
	case scene.ActionTurnRight:
		return scene.ActionTurnLeft, true
	case scene.ActionMoveForward:
		return scene.ActionMoveBackward, true
	case scene.ActionMoveBackward:
		return scene.ActionMoveForward, true
	default:
		return 0, false
	}
}

// terminalAction maps arrow keys and WASD to scene actions.
func terminalAction(ev *tcell.EventKey) (scene.Action, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return scene.ActionTurnLeft, true
	case tcell.KeyRight:
		return scene.ActionTurnRight, true
	case tcell.KeyUp:
		return scene.ActionMoveForward, true
	case tcell.KeyDown:
		return scene.ActionMoveBackward, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return scene.ActionTurnLeft, true
		case 'd', 'D':
			return scene.ActionTurnRight, true
		case 'w', 'W':
			return scene.ActionMoveForward, true
		case 's', 'S':
			return scene.ActionMoveBackward, true
		}
	}
	return 0, false
}

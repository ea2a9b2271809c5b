// Package scene owns the map and the player, advances the player from input,
// and renders the ray-cast view into an RGBA frame.
package scene

// Action is a held control the scene reads each update.
type Action int

const (
	ActionTurnLeft Action = iota
	ActionTurnRight
	ActionMoveForward
	ActionMoveBackward
)

// String returns a human-readable action name.
func (a Action) String() string {
	switch a {
	case ActionTurnLeft:
		return "turn_left"
	case ActionTurnRight:
		return "turn_right"
	case ActionMoveForward:
		return "move_forward"
	case ActionMoveBackward:
		return "move_backward"
	default:
		return "unknown"
	}
}

// Input reports which controls are held for the current frame.
// Implementations are owned by the frame driver.
type Input interface {
	Held(a Action) bool
}

// Keys is a fixed input state, useful for drivers that already track held
// keys and for tests.
type Keys map[Action]bool

// Held implements Input.
func (k Keys) Held(a Action) bool {
	return k[a]
}

// axis folds a pair of opposing controls into -1, 0 or +1. Holding both or
// neither cancels out.
func axis(in Input, positive, negative Action) float64 {
	var v float64
	if in.Held(positive) {
		v++
	}
	if in.Held(negative) {
		v--
	}
	return v
}

// Package game provides driver configuration, scene construction and the
// terminal frame driver that feeds input and elapsed time into a scene.
package game

// State represents the current driver state.
type State int

const (
	// StateRunning updates the player every frame.
	StateRunning State = iota
	// StatePaused keeps presenting frames but ignores movement input.
	StatePaused
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Toggle switches between running and paused.
func (s State) Toggle() State {
	if s == StatePaused {
		return StateRunning
	}
	return StatePaused
}

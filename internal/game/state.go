// Package game runs a wavebreaker simulation: it owns the frame loop and
// is the scene every actor, ability and talent acts through.
package game

// State represents the current run state.
type State int

const (
	// StatePlaying is the normal frame-stepped simulation.
	StatePlaying State = iota
	// StateDrafting pauses the simulation while a card draft is open.
	StateDrafting
	// StateGameOver is entered when the player dies.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateDrafting:
		return "drafting"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Package game implements the line drop round: phases, variants, scoring and
// the controller that owns all round state.
package game

// Phase is the current stage of a round.
type Phase int

const (
	PhaseIdle   Phase = iota // Before the first round
	PhaseActive              // Marker is falling
	PhaseResult              // Round resolved, waiting for the next start
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseResult:
		return "result"
	default:
		return "unknown"
	}
}

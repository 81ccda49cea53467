package client

import (
	"time"

	"github.com/tomz197/linedrop/internal/draw"
	"github.com/tomz197/linedrop/internal/game"
)

// ClientState holds per-connection presentation state. Round state lives in
// the session's controller; this is only what the renderer needs on top.
type ClientState struct {
	Round         game.Round        // Snapshot taken at the start of the frame
	Players       int               // Connected players, from the lobby snapshot
	lastResult    game.Result       // Most recent resolved round
	termSizeFunc  draw.TermSizeFunc // Function to get terminal size
	Running       bool              // Client loop running
	delta         time.Duration     // Frame delta time
	shuttingDown  bool              // Server announced shutdown
	shutdownTimer float64           // Countdown before auto-disconnect on shutdown
	isInactive    bool              // Whether the client is in inactive warning state
	wasInactive   bool              // Inactivity state drawn last frame
	prevPhase     game.Phase        // Phase drawn last frame
	prevShutdown  bool              // Shutdown state drawn last frame
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running:   true,
		prevPhase: game.PhaseIdle,
	}
}

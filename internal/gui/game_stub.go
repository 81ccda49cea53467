//go:build !ebiten

package gui

import "errors"

// ErrNoWindow is returned by the headless build.
var ErrNoWindow = errors.New("gui: window support requires the 'ebiten' build tag")

// Game is a placeholder that satisfies the API expected by the window build.
type Game struct{}

// New reports that the ebiten build tag is required.
func New(*Driver) (*Game, error) {
	return nil, ErrNoWindow
}

// Update always reports that the window build tag is missing.
func (g *Game) Update() error {
	return ErrNoWindow
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }

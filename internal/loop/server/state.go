package server

import "github.com/tomz197/linedrop/internal/loop/config"

// LobbySnapshot is an immutable view of the lobby for rendering.
type LobbySnapshot struct {
	Players int
}

// TruncateName limits a display name to config.MaxUsernameLength runes.
func TruncateName(name string) string {
	r := []rune(name)
	if len(r) > config.MaxUsernameLength {
		return string(r[:config.MaxUsernameLength])
	}
	return name
}

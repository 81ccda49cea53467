// Package config centralizes the tunable timing and rendering parameters.
package config

import "time"

// Round scheduling. The marker advances one variant step per tick.
const (
	TickRate     = 60
	TickInterval = time.Second / TickRate
)

// View resolution - the playfield in logical units.
// The vertical axis is rescaled to the variant's overshoot limit at draw time.
const (
	ViewWidth     = 120 // Logical viewport width
	ViewTopMargin = 20  // Logical units of headroom above position 0
)

// Marker geometry in logical units.
const (
	MarkerWidth   = 30
	TargetDashGap = 3 // Dotted target line: one lit pixel every N columns
)

// Max render resolution. Larger terminals get a centered, bordered field.
const (
	MaxTermWidth  = 120
	MaxTermHeight = 45
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server housekeeping rate
const (
	ServerTickRate = 20
	ServerTickTime = time.Second / ServerTickRate
)

// Result panel
const (
	RecentResults = 5 // Past rounds listed under a result
)

// Player names
const (
	MaxUsernameLength = 16
)

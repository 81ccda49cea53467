package game

import "strings"

// Round is a read-only snapshot of the controller state for renderers.
type Round struct {
	Phase       Phase
	Number      int     // Rounds started so far; 0 while idle
	Position    float64 // Marker offset along the fall axis
	Target      float64
	Limit       float64 // Target plus overshoot margin
	Score       int     // Points of the last resolved round
	TotalScore  int     // Sum of all awarded points
	Best        int     // Best single-round score
	Completed   int     // Rounds resolved so far
	ResultLabel string
	Distance    float64 // Distance to target when the round resolved
}

// Result describes how a single round ended.
type Result struct {
	Round     int
	Position  float64
	Distance  float64
	Points    int
	Label     string
	Overshoot bool // Resolved automatically because the marker fell too far
}

// TickOutcome is what a single tick did to the round.
type TickOutcome int

const (
	TickIgnored   TickOutcome = iota // Round not active or tick belongs to an old round
	TickAdvanced                     // Marker moved
	TickOvershoot                    // Marker fell past the limit; round resolved as a miss
)

func (o TickOutcome) String() string {
	switch o {
	case TickIgnored:
		return "ignored"
	case TickAdvanced:
		return "advanced"
	case TickOvershoot:
		return "overshoot"
	default:
		return "unknown"
	}
}

// Recent returns the last n results of history, oldest first.
func Recent(history []Result, n int) []Result {
	if n <= 0 {
		return nil
	}
	if len(history) > n {
		return history[len(history)-n:]
	}
	return history
}

// RecentLabels joins the labels of the last n results, e.g. "Good! Perfect!".
func RecentLabels(history []Result, n int) string {
	recent := Recent(history, n)
	labels := make([]string, len(recent))
	for i, r := range recent {
		labels[i] = r.Label
	}
	return strings.Join(labels, " ")
}

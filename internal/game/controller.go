package game

import (
	"fmt"
	"sync"
)

// Controller owns the round state machine. All methods are safe for
// concurrent use; each check-and-transition happens under one lock, so a
// round resolves at most once no matter how many goroutines race on it.
type Controller struct {
	mu      sync.Mutex
	variant Variant
	round   Round
	id      uint64 // Identifier of the current round; 0 before the first start
	history []Result
}

// historyLimit caps the number of results kept for display.
const historyLimit = 512

// NewController creates an idle controller for the given variant.
func NewController(v Variant) (*Controller, error) {
	if err := v.Validate(); err != nil {
		return nil, fmt.Errorf("new controller: %w", err)
	}
	return &Controller{
		variant: v,
		round: Round{
			Phase:  PhaseIdle,
			Target: v.Target,
			Limit:  v.Limit(),
		},
	}, nil
}

// Variant returns the variant the controller was built with.
func (c *Controller) Variant() Variant {
	return c.variant
}

// Start begins a new round from Idle or Result. It returns the id of the new
// round. Starting while a round is active changes nothing and returns the
// active round's id with ok=false.
func (c *Controller) Start() (id uint64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.round.Phase == PhaseActive {
		return c.id, false
	}

	c.id++
	c.round.Phase = PhaseActive
	c.round.Number++
	c.round.Position = 0
	c.round.Score = 0
	c.round.ResultLabel = ""
	c.round.Distance = 0
	return c.id, true
}

// Tick advances the marker of round id by one step. Ticks for any other
// round, or while no round is active, are ignored.
func (c *Controller) Tick(id uint64) (TickOutcome, Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.round.Phase != PhaseActive || id != c.id {
		return TickIgnored, Result{}
	}

	next := c.round.Position + c.variant.Step
	if next >= c.variant.Limit() {
		res := Result{
			Round:     c.round.Number,
			Position:  c.round.Position,
			Distance:  Distance(next, c.variant.Target),
			Points:    PointsMiss,
			Label:     LabelMiss,
			Overshoot: true,
		}
		c.resolveLocked(res)
		return TickOvershoot, res
	}

	c.round.Position = next
	return TickAdvanced, Result{}
}

// RequestStop scores the active round at the marker's current position.
// Outside an active round it is a no-op and returns ok=false.
func (c *Controller) RequestStop() (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.round.Phase != PhaseActive {
		return Result{}, false
	}

	dist := Distance(c.round.Position, c.variant.Target)
	points, label := c.variant.Thresholds.Score(dist)
	res := Result{
		Round:    c.round.Number,
		Position: c.round.Position,
		Distance: dist,
		Points:   points,
		Label:    label,
	}
	c.resolveLocked(res)
	return res, true
}

// resolveLocked moves the round to Result and applies the score.
func (c *Controller) resolveLocked(res Result) {
	c.round.Phase = PhaseResult
	c.round.Score = res.Points
	c.round.TotalScore += res.Points
	c.round.ResultLabel = res.Label
	c.round.Distance = res.Distance
	c.round.Completed++
	if res.Points > c.round.Best {
		c.round.Best = res.Points
	}
	c.history = append(c.history, res)
	if len(c.history) > historyLimit {
		c.history = c.history[len(c.history)-historyLimit:]
	}
}

// Snapshot returns a copy of the current round state.
func (c *Controller) Snapshot() Round {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.round
}

// History returns the results of resolved rounds in order, oldest first.
// Only the most recent historyLimit results are kept.
func (c *Controller) History() []Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Result, len(c.history))
	copy(out, c.history)
	return out
}

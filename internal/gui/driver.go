// Package gui is the desktop window front-end. The window itself needs the
// ebiten build tag; Driver and Config build everywhere.
package gui

import (
	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop"
)

// Driver advances rounds cooperatively: the window's Update calls Step once
// per frame on the single game goroutine, so no scheduling source is needed.
type Driver struct {
	ctrl     *game.Controller
	id       uint64
	last     game.Result
	hasLast  bool
	onResult loop.ResultFunc
}

// NewDriver creates a driver for a fresh controller.
func NewDriver(v game.Variant, onResult loop.ResultFunc) (*Driver, error) {
	ctrl, err := game.NewController(v)
	if err != nil {
		return nil, err
	}
	return &Driver{ctrl: ctrl, onResult: onResult}, nil
}

// Controller exposes the underlying controller.
func (d *Driver) Controller() *game.Controller {
	return d.ctrl
}

// Snapshot returns the current round.
func (d *Driver) Snapshot() game.Round {
	return d.ctrl.Snapshot()
}

// LastResult returns the most recent resolved round, if any.
func (d *Driver) LastResult() (game.Result, bool) {
	return d.last, d.hasLast
}

// Trigger applies one input trigger with the same meaning as loop.Session.Handle.
func (d *Driver) Trigger(t loop.Trigger) {
	switch t {
	case loop.TriggerStopKey:
		d.stop()
	case loop.TriggerPointer:
		if d.ctrl.Snapshot().Phase == game.PhaseActive {
			d.stop()
		} else {
			d.start()
		}
	case loop.TriggerStartKey:
		d.start()
	}
}

// Frame applies one frame of input in order and then steps the round.
// A trigger that would start a round is dropped once a round resolved in
// the same frame, and a round started this frame takes its first tick on
// the next one.
func (d *Driver) Frame(triggers ...loop.Trigger) game.TickOutcome {
	number := d.ctrl.Snapshot().Number
	resolved := false
	for _, t := range triggers {
		if resolved && t != loop.TriggerStopKey {
			continue
		}
		wasActive := d.ctrl.Snapshot().Phase == game.PhaseActive
		d.Trigger(t)
		if wasActive && d.ctrl.Snapshot().Phase != game.PhaseActive {
			resolved = true
		}
	}
	if d.ctrl.Snapshot().Number != number {
		return game.TickIgnored
	}
	return d.Step()
}

// Step advances the active round by one tick. It is a no-op outside Active.
func (d *Driver) Step() game.TickOutcome {
	outcome, res := d.ctrl.Tick(d.id)
	if outcome == game.TickOvershoot {
		d.resolved(res)
	}
	return outcome
}

func (d *Driver) start() {
	if id, ok := d.ctrl.Start(); ok {
		d.id = id
	}
}

func (d *Driver) stop() {
	if res, ok := d.ctrl.RequestStop(); ok {
		d.resolved(res)
	}
}

func (d *Driver) resolved(res game.Result) {
	d.last = res
	d.hasLast = true
	if d.onResult != nil {
		d.onResult(res)
	}
}

// Package loop drives rounds in real time and routes player input into them.
package loop

import (
	"context"
	"sync"

	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop/config"
)

// Trigger is a player input the session reacts to.
type Trigger int

const (
	TriggerStopKey  Trigger = iota // Designated stop key (space)
	TriggerPointer                 // Pointer click: stops an active round, otherwise starts one
	TriggerStartKey                // Start / play-again key
)

// ResultFunc is called once for every resolved round. It may run on the
// session's tick goroutine and must not call back into the session.
type ResultFunc func(game.Result)

// Session couples a Controller with the scheduling source that advances it.
// While a round is active exactly one goroutine ticks it; that goroutine is
// torn down whenever the round leaves the active phase.
type Session struct {
	ctrl      *game.Controller
	newSource NewFrameSource
	onResult  ResultFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// SessionOptions configures a Session.
type SessionOptions struct {
	Source   NewFrameSource // Defaults to a ticker at config.TickInterval
	OnResult ResultFunc
}

// NewSession creates a session around ctrl.
func NewSession(ctrl *game.Controller, opts SessionOptions) *Session {
	src := opts.Source
	if src == nil {
		src = TickerSource(config.TickInterval)
	}
	return &Session{
		ctrl:      ctrl,
		newSource: src,
		onResult:  opts.OnResult,
	}
}

// Controller returns the underlying round controller.
func (s *Session) Controller() *game.Controller {
	return s.ctrl
}

// Snapshot returns the current round state.
func (s *Session) Snapshot() game.Round {
	return s.ctrl.Snapshot()
}

// Start begins a new round and subscribes a frame source to it.
// It is a no-op while a round is active.
func (s *Session) Start(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ctrl.Snapshot().Phase == game.PhaseActive {
		return false
	}
	// A previous run may still be unwinding after an overshoot.
	s.cancelRunLocked()

	id, ok := s.ctrl.Start()
	if !ok {
		return false
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go s.run(runCtx, id, done)
	return true
}

// Stop scores the active round and cancels its frame source.
// Outside an active round it does nothing.
func (s *Session) Stop() (game.Result, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.ctrl.RequestStop()
	s.cancelRunLocked()
	if ok && s.onResult != nil {
		s.onResult(res)
	}
	return res, ok
}

// Handle routes a player trigger to Start or Stop.
func (s *Session) Handle(ctx context.Context, t Trigger) {
	active := s.ctrl.Snapshot().Phase == game.PhaseActive
	switch t {
	case TriggerStopKey:
		if active {
			s.Stop()
		}
	case TriggerPointer:
		if active {
			s.Stop()
		} else {
			s.Start(ctx)
		}
	case TriggerStartKey:
		if !active {
			s.Start(ctx)
		}
	}
}

// Close cancels any running frame source and waits for it to exit.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelRunLocked()
}

// cancelRunLocked stops the tick goroutine and waits until it has exited.
func (s *Session) cancelRunLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

// run ticks round id on every frame until the round is no longer active.
func (s *Session) run(ctx context.Context, id uint64, done chan struct{}) {
	defer close(done)
	src := s.newSource()
	defer src.Stop()

	frames := src.Frames()
	for {
		select {
		case <-ctx.Done():
			return
		case <-frames:
			out, res := s.ctrl.Tick(id)
			switch out {
			case game.TickAdvanced:
				continue
			case game.TickOvershoot:
				if s.onResult != nil {
					s.onResult(res)
				}
			}
			return
		}
	}
}

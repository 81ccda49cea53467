// Package client runs one player's game in an ANSI terminal, locally or over SSH.
package client

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/linedrop/internal/draw"
	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/input"
	"github.com/tomz197/linedrop/internal/loop"
	"github.com/tomz197/linedrop/internal/loop/config"
	"github.com/tomz197/linedrop/internal/loop/server"
	"github.com/tomz197/linedrop/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	session      *loop.Session
	state        *ClientState
	field        object.Field
	effects      []object.Object // Short-lived particles
	results      chan game.Result
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	log          zerolog.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Variant      game.Variant
	Source       loop.NewFrameSource // Defaults to a ticker at config.TickInterval
	Logger       zerolog.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) (*Client, error) {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}

	ctrl, err := game.NewController(opts.Variant)
	if err != nil {
		return nil, err
	}

	handle := gs.RegisterClient(opts.Username)
	state := NewClientState()
	state.termSizeFunc = termSizeFunc

	field := object.Field{
		Width:     config.ViewWidth,
		TopMargin: config.ViewTopMargin,
		Target:    opts.Variant.Target,
		Limit:     opts.Variant.Limit(),
	}

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := draw.TerminalSizeRawWith(termSizeFunc)
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, field.Width, field.Height())
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	c := &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		field:        field,
		results:      make(chan game.Result, 8),
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     opts.Username,
		termSizeFunc: termSizeFunc,
		log: opts.Logger.With().
			Int("client", handle.ID).
			Str("user", handle.Username).
			Str("variant", opts.Variant.Name).
			Logger(),
	}
	c.session = loop.NewSession(ctrl, loop.SessionOptions{
		Source:   opts.Source,
		OnResult: c.queueResult,
	})
	return c, nil
}

// Session exposes the client's round session.
func (c *Client) Session() *loop.Session {
	return c.session
}

// Run starts the client loop. Blocks until the client quits, the context is
// cancelled or the server stops.
func (c *Client) Run(ctx context.Context) error {
	draw.HideCursor(c.writer)
	draw.EnableMouse(c.writer)
	defer draw.ShowCursor(c.writer)
	defer draw.DisableMouse(c.writer)
	draw.ClearScreen(c.writer)

	defer c.session.Close()

	lastTime := time.Now()

	for c.state.Running {
		select {
		case <-ctx.Done():
			c.state.Running = false
			continue
		default:
		}

		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput(ctx)

		// Check for server events
		c.processServerEvents()

		// Handle finished rounds
		c.processResults()

		// Handle screen resize
		c.updateScreen()

		// Advance effects and countdowns
		c.update()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	// Unregister from server
	c.server.UnregisterClient(c.handle.ID)

	draw.ClearScreen(c.writer)
	return nil
}

// processInput reads input events and routes them into the session.
func (c *Client) processInput(ctx context.Context) {
	events := input.ReadEvents(c.inputStream)
	if c.inputStream.Closed() && len(events) == 0 {
		c.state.Running = false
		return
	}

	if len(events) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	for _, ev := range events {
		trigger, ok := c.translate(ev)
		if !ok {
			continue
		}
		c.session.Handle(ctx, trigger)
	}
}

// translate maps an input event to a session trigger. Quit events stop the
// client; during shutdown no new rounds are started.
func (c *Client) translate(ev input.Event) (loop.Trigger, bool) {
	switch ev.Kind {
	case input.KindQuit:
		c.state.Running = false
		return 0, false
	case input.KindClick:
		if c.state.shuttingDown && c.session.Snapshot().Phase != game.PhaseActive {
			return 0, false
		}
		return loop.TriggerPointer, true
	case input.KindKey:
		switch ev.Key {
		case input.KeyEscape:
			c.state.Running = false
		case input.KeySpace:
			return loop.TriggerStopKey, true
		case input.KeyEnter, 's', 'S':
			if c.state.shuttingDown {
				return 0, false
			}
			return loop.TriggerStartKey, true
		}
	}
	return 0, false
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventServerShutdown:
				c.state.shuttingDown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// queueResult hands a resolved round to the client loop. It may run on the
// session's tick goroutine.
func (c *Client) queueResult(res game.Result) {
	select {
	case c.results <- res:
	default:
	}
}

// processResults spawns effects and reports finished rounds.
func (c *Client) processResults() {
	for {
		select {
		case res := <-c.results:
			c.log.Debug().
				Int("round", res.Round).
				Int("points", res.Points).
				Str("label", res.Label).
				Float64("distance", res.Distance).
				Bool("overshoot", res.Overshoot).
				Msg("round finished")
			c.state.lastResult = res
			c.server.ReportResult(c.handle.ID, res)
			if n := object.BurstSize(res.Points); n > 0 {
				c.effects = append(c.effects, object.Burst(c.field.Width/2, c.field.Y(res.Position), n, 40, 0.6, draw.PenMarker)...)
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := draw.TerminalSizeRawWith(c.termSizeFunc)
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = termWidth
	renderHeight = termHeight
	if renderWidth > config.MaxTermWidth {
		renderWidth = config.MaxTermWidth
	}
	if renderHeight > config.MaxTermHeight {
		renderHeight = config.MaxTermHeight
	}
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances particles and the shutdown countdown, then snapshots the
// round for drawing.
func (c *Client) update() {
	c.effects, _ = object.UpdateAll(c.effects, object.UpdateContext{Delta: c.state.delta})

	if c.state.shuttingDown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
	}

	c.state.Round = c.session.Snapshot()
	c.state.Players = c.server.GetSnapshot().Players
}

// Package tui is the local full-screen front-end built on tcell. It shares the
// round session with the other front-ends and adds mouse support and sound.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop"
	"github.com/tomz197/linedrop/internal/loop/config"
	"github.com/tomz197/linedrop/internal/sound"
)

var (
	styleText   = tcell.StyleDefault
	styleDim    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMarker = tcell.StyleDefault.Foreground(tcell.ColorLime)
	styleTarget = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleTitle  = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleResult = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Options configures the tcell front-end.
type Options struct {
	Variant game.Variant
	Sound   *sound.Player       // Optional
	Source  loop.NewFrameSource // Defaults to a ticker at config.TickInterval
	Logger  zerolog.Logger
}

// UI draws rounds on a tcell screen and routes its events into a session.
type UI struct {
	screen     tcell.Screen
	session    *loop.Session
	sound      *sound.Player
	log        zerolog.Logger
	results    chan game.Result
	lastResult game.Result
	buttons    tcell.ButtonMask // Mouse buttons held at the last event
	quit       bool
}

// New wraps an initialized screen. It enables mouse reporting and hides the cursor.
func New(screen tcell.Screen, opts Options) (*UI, error) {
	ctrl, err := game.NewController(opts.Variant)
	if err != nil {
		return nil, err
	}
	u := &UI{
		screen:  screen,
		sound:   opts.Sound,
		log:     opts.Logger.With().Str("variant", opts.Variant.Name).Logger(),
		results: make(chan game.Result, 8),
	}
	u.session = loop.NewSession(ctrl, loop.SessionOptions{
		Source: opts.Source,
		OnResult: func(res game.Result) {
			select {
			case u.results <- res:
			default:
			}
		},
	})

	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()
	return u, nil
}

// Session exposes the round session.
func (u *UI) Session() *loop.Session {
	return u.session
}

// Run polls screen events and redraws at config.ClientTargetFPS until the
// player quits or ctx is cancelled. The caller owns screen.Fini.
func (u *UI) Run(ctx context.Context) error {
	defer u.session.Close()

	ticker := time.NewTicker(config.ClientTargetFrameTime)
	defer ticker.Stop()

	eventCh := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go u.pollEvents(eventCh, done)

	for !u.quit {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventCh:
			u.HandleEvent(ctx, ev)
		case <-ticker.C:
			u.processResults()
			u.Draw()
		}
	}
	return nil
}

// pollEvents forwards screen events until the screen is finalized or done
// is closed.
func (u *UI) pollEvents(eventCh chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := u.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case eventCh <- ev:
		case <-done:
			return
		}
	}
}

// HandleEvent maps one tcell event to a session trigger.
func (u *UI) HandleEvent(ctx context.Context, ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			u.quit = true
		case ev.Key() == tcell.KeyEnter:
			u.trigger(ctx, loop.TriggerStartKey)
		case ev.Key() == tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				u.quit = true
			case ' ':
				u.trigger(ctx, loop.TriggerStopKey)
			case 's', 'S':
				u.trigger(ctx, loop.TriggerStartKey)
			}
		}

	case *tcell.EventMouse:
		// Only the press edge counts; holding or dragging does nothing.
		buttons := ev.Buttons()
		pressed := buttons&tcell.Button1 != 0 && u.buttons&tcell.Button1 == 0
		u.buttons = buttons
		if pressed {
			u.trigger(ctx, loop.TriggerPointer)
		}

	case *tcell.EventResize:
		u.screen.Sync()
	}
}

// Quit reports whether the player asked to leave.
func (u *UI) Quit() bool {
	return u.quit
}

func (u *UI) trigger(ctx context.Context, t loop.Trigger) {
	wasActive := u.session.Snapshot().Phase == game.PhaseActive
	u.session.Handle(ctx, t)
	if !wasActive && u.session.Snapshot().Phase == game.PhaseActive && u.sound != nil {
		u.sound.PlayStart()
	}
}

// processResults plays feedback for rounds resolved since the last frame.
func (u *UI) processResults() {
	for {
		select {
		case res := <-u.results:
			u.lastResult = res
			u.log.Debug().
				Int("round", res.Round).
				Int("points", res.Points).
				Str("label", res.Label).
				Float64("distance", res.Distance).
				Bool("overshoot", res.Overshoot).
				Msg("round finished")
			if u.sound != nil {
				u.sound.PlayResult(res)
			}
		default:
			return
		}
	}
}

// Draw renders the current round snapshot.
func (u *UI) Draw() {
	u.screen.Clear()
	w, h := u.screen.Size()
	round := u.session.Snapshot()

	switch round.Phase {
	case game.PhaseIdle:
		u.drawTitle(w, h)
	default:
		u.drawField(round, w, h)
		u.drawHUD(round, w, h)
		if round.Phase == game.PhaseResult {
			u.drawResult(round, w, h)
		}
	}
	u.screen.Show()
}

// fieldRows maps the logical fall axis onto screen rows below the HUD.
func fieldRows(round game.Round, h int) func(pos float64) int {
	const top = 3
	bottom := h - 3
	span := float64(bottom - top)
	return func(pos float64) int {
		if round.Limit <= 0 {
			return top
		}
		return top + int(pos/round.Limit*span+0.5)
	}
}

func (u *UI) drawField(round game.Round, w, h int) {
	row := fieldRows(round, h)

	for x := 0; x < w; x += config.TargetDashGap {
		u.screen.SetContent(x, row(round.Target), '─', nil, styleTarget)
	}
	for x := 0; x < w; x += 6 {
		u.screen.SetContent(x, row(round.Limit), '·', nil, styleDim)
	}

	markerWidth := w * config.MarkerWidth / config.ViewWidth
	left := (w - markerWidth) / 2
	y := row(round.Position)
	for x := left; x < left+markerWidth; x++ {
		u.screen.SetContent(x, y, '█', nil, styleMarker)
	}
}

func (u *UI) drawHUD(round game.Round, w, h int) {
	u.text(1, 0, styleText, fmt.Sprintf("Score: %d", round.Score))
	total := fmt.Sprintf("Total: %d", round.TotalScore)
	u.text(w-len(total)-1, 0, styleText, total)
	u.text(1, 1, styleDim, fmt.Sprintf("Round: %d  Best: %d", round.Number, round.Best))
	if round.Phase == game.PhaseActive {
		u.centered(w, h-1, styleDim, "Press SPACE or CLICK to stop the line on the target")
	}
}

func (u *UI) drawResult(round game.Round, w, h int) {
	distance := fmt.Sprintf("Distance: %.0f", round.Distance)
	if u.lastResult.Round == round.Number && u.lastResult.Overshoot {
		distance = "Too late!"
	}
	y := h/2 - 2
	u.centered(w, y, styleResult, round.ResultLabel)
	u.centered(w, y+1, styleText, fmt.Sprintf("Score: %d", round.Score))
	u.centered(w, y+2, styleText, distance)
	recent := game.RecentLabels(u.session.Controller().History(), config.RecentResults)
	u.centered(w, y+4, styleDim, "Recent: "+recent)
	u.centered(w, y+6, styleDim, "ENTER or CLICK to Play Again")
}

func (u *UI) drawTitle(w, h int) {
	v := u.session.Controller().Variant()
	y := h/2 - 5
	u.centered(w, y, styleTitle, "L I N E   D R O P")
	u.centered(w, y+2, styleText, fmt.Sprintf("Stop the falling line on the target (%s)", v.Name))
	u.centered(w, y+4, styleDim, "SPACE / CLICK  stop")
	u.centered(w, y+5, styleDim, "ENTER / S / CLICK  start")
	u.centered(w, y+6, styleDim, "Q / ESC  quit")
	if time.Now().UnixMilli()/600%2 == 0 {
		u.centered(w, y+8, styleText, ">>  Press ENTER or CLICK to Start  <<")
	}
}

func (u *UI) centered(w, y int, style tcell.Style, s string) {
	u.text((w-len([]rune(s)))/2, y, style, s)
}

func (u *UI) text(x, y int, style tcell.Style, s string) {
	for i, r := range []rune(s) {
		u.screen.SetContent(x+i, y, r, nil, style)
	}
}

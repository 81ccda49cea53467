package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop"
)

type chanSource struct {
	ch chan time.Time
}

func (s *chanSource) Frames() <-chan time.Time { return s.ch }
func (s *chanSource) Stop()                    {}

func newTestUI(t *testing.T) (*UI, tcell.SimulationScreen, chan *chanSource) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	screen.SetSize(80, 30)
	t.Cleanup(screen.Fini)

	sources := make(chan *chanSource, 4)
	u, err := New(screen, Options{
		Variant: game.Classic,
		Logger:  zerolog.Nop(),
		Source: func() loop.FrameSource {
			src := &chanSource{ch: make(chan time.Time)}
			sources <- src
			return src
		},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(u.session.Close)
	return u, screen, sources
}

func nextSource(t *testing.T, sources chan *chanSource) *chanSource {
	t.Helper()
	select {
	case src := <-sources:
		return src
	case <-time.After(time.Second):
		t.Fatal("round did not start")
		return nil
	}
}

func feed(t *testing.T, src *chanSource, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case src.ch <- time.Now():
		case <-time.After(time.Second):
			t.Fatalf("frame %d not consumed", i)
		}
	}
}

func waitPosition(t *testing.T, u *UI, want float64) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for u.Session().Snapshot().Position != want {
		if time.Now().After(deadline) {
			t.Fatalf("position = %v, want %v", u.Session().Snapshot().Position, want)
		}
		time.Sleep(time.Millisecond)
	}
}

func screenText(screen tcell.SimulationScreen) string {
	w, h := screen.Size()
	var b strings.Builder
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := screen.GetContent(x, y)
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func key(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestKeyboardRound(t *testing.T) {
	u, screen, sources := newTestUI(t)
	ctx := context.Background()

	u.Draw()
	if !strings.Contains(screenText(screen), "L I N E   D R O P") {
		t.Error("title screen not drawn")
	}

	// Stop before start is ignored.
	u.HandleEvent(ctx, key(' '))
	if p := u.Session().Snapshot().Phase; p != game.PhaseIdle {
		t.Fatalf("phase after early stop = %v, want idle", p)
	}

	u.HandleEvent(ctx, tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))
	src := nextSource(t, sources)
	feed(t, src, 150)
	waitPosition(t, u, 300)

	u.HandleEvent(ctx, key(' '))
	round := u.Session().Snapshot()
	if round.Phase != game.PhaseResult || round.ResultLabel != game.LabelPerfect || round.TotalScore != 100 {
		t.Fatalf("round = %+v, want perfect result", round)
	}

	u.processResults()
	u.Draw()
	text := screenText(screen)
	for _, want := range []string{"Perfect!", "Total: 100", "Recent: Perfect!", "Play Again"} {
		if !strings.Contains(text, want) {
			t.Errorf("screen missing %q", want)
		}
	}
}

func TestMouseIsEdgeTriggered(t *testing.T) {
	u, _, sources := newTestUI(t)
	ctx := context.Background()

	u.HandleEvent(ctx, tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	src := nextSource(t, sources)

	// Holding the button (drag) must not stop the round.
	u.HandleEvent(ctx, tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone))
	if p := u.Session().Snapshot().Phase; p != game.PhaseActive {
		t.Fatalf("phase after drag = %v, want active", p)
	}

	feed(t, src, 135)
	waitPosition(t, u, 270)

	u.HandleEvent(ctx, tcell.NewEventMouse(11, 10, tcell.ButtonNone, tcell.ModNone))
	u.HandleEvent(ctx, tcell.NewEventMouse(11, 10, tcell.Button1, tcell.ModNone))
	round := u.Session().Snapshot()
	if round.Phase != game.PhaseResult || round.ResultLabel != game.LabelGood {
		t.Fatalf("round = %+v, want good result", round)
	}
}

func TestQuitKeys(t *testing.T) {
	tests := []*tcell.EventKey{
		key('q'),
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
	}
	for _, ev := range tests {
		u, _, _ := newTestUI(t)
		u.HandleEvent(context.Background(), ev)
		if !u.Quit() {
			t.Errorf("key %v did not quit", ev.Name())
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	u, _, _ := newTestUI(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- u.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestPollEventsReturnsAfterRun(t *testing.T) {
	u, screen, _ := newTestUI(t)
	screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)

	// Nobody receives, as after Run has returned.
	eventCh := make(chan tcell.Event)
	done := make(chan struct{})
	close(done)

	returned := make(chan struct{})
	go func() {
		u.pollEvents(eventCh, done)
		close(returned)
	}()
	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("pollEvents blocked on send after done was closed")
	}
}

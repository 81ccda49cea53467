package gui

import (
	"flag"
	"testing"

	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop"
)

func newDriver(t *testing.T, v game.Variant) (*Driver, *[]game.Result) {
	t.Helper()
	var results []game.Result
	d, err := NewDriver(v, func(res game.Result) { results = append(results, res) })
	if err != nil {
		t.Fatalf("NewDriver: %v", err)
	}
	return d, &results
}

func TestDriverStepsOnlyWhileActive(t *testing.T) {
	d, _ := newDriver(t, game.Classic)

	if got := d.Step(); got != game.TickIgnored {
		t.Fatalf("Step while idle = %v, want ignored", got)
	}

	d.Trigger(loop.TriggerStartKey)
	for i := 0; i < 150; i++ {
		if got := d.Step(); got != game.TickAdvanced {
			t.Fatalf("step %d = %v, want advanced", i, got)
		}
	}
	if pos := d.Snapshot().Position; pos != 300 {
		t.Fatalf("position = %v, want 300", pos)
	}

	d.Trigger(loop.TriggerStopKey)
	if got := d.Step(); got != game.TickIgnored {
		t.Fatalf("Step after stop = %v, want ignored", got)
	}
	res, ok := d.LastResult()
	if !ok || res.Label != game.LabelPerfect {
		t.Fatalf("last result = %+v, %v; want perfect", res, ok)
	}
}

func TestDriverOvershoot(t *testing.T) {
	d, results := newDriver(t, game.Classic)
	d.Trigger(loop.TriggerPointer)

	outcome := game.TickAdvanced
	steps := 0
	for outcome == game.TickAdvanced {
		outcome = d.Step()
		steps++
	}
	if outcome != game.TickOvershoot || steps != 200 {
		t.Fatalf("outcome %v after %d steps, want overshoot after 200", outcome, steps)
	}
	if len(*results) != 1 || !(*results)[0].Overshoot || (*results)[0].Points != 0 {
		t.Fatalf("results = %+v, want one overshoot miss", *results)
	}
}

func TestDriverPointerStartsAndStops(t *testing.T) {
	d, results := newDriver(t, game.Swift)

	d.Trigger(loop.TriggerPointer)
	if p := d.Snapshot().Phase; p != game.PhaseActive {
		t.Fatalf("phase = %v, want active", p)
	}
	for i := 0; i < 100; i++ {
		d.Step()
	}
	d.Trigger(loop.TriggerPointer)
	if len(*results) != 1 || (*results)[0].Label != game.LabelPerfect {
		t.Fatalf("results = %+v, want one perfect", *results)
	}

	// Start key during Result begins the next round.
	d.Trigger(loop.TriggerStartKey)
	round := d.Snapshot()
	if round.Phase != game.PhaseActive || round.Position != 0 || round.TotalScore != 100 {
		t.Fatalf("round = %+v, want fresh active round keeping the total", round)
	}
}

func TestDriverFrameStartDoesNotStep(t *testing.T) {
	d, _ := newDriver(t, game.Classic)

	if got := d.Frame(loop.TriggerStartKey); got != game.TickIgnored {
		t.Fatalf("start frame = %v, want ignored", got)
	}
	if round := d.Snapshot(); round.Phase != game.PhaseActive || round.Position != 0 {
		t.Fatalf("after start frame round = %+v, want active at 0", round)
	}

	if got := d.Frame(); got != game.TickAdvanced {
		t.Fatalf("next frame = %v, want advanced", got)
	}
	if pos := d.Snapshot().Position; pos != 2 {
		t.Fatalf("position after one frame = %v, want 2", pos)
	}
}

func TestDriverFrameStopAndClickDoNotRestart(t *testing.T) {
	d, results := newDriver(t, game.Classic)
	d.Frame(loop.TriggerStartKey)
	for i := 0; i < 150; i++ {
		d.Frame()
	}

	d.Frame(loop.TriggerStopKey, loop.TriggerPointer, loop.TriggerStartKey)
	round := d.Snapshot()
	if round.Phase != game.PhaseResult || round.Number != 1 {
		t.Fatalf("round = %+v, want result of round 1", round)
	}
	if len(*results) != 1 || (*results)[0].Label != game.LabelPerfect {
		t.Fatalf("results = %+v, want one perfect", *results)
	}

	// The click on the following frame starts the next round.
	d.Frame(loop.TriggerPointer)
	if round := d.Snapshot(); round.Phase != game.PhaseActive || round.Number != 2 {
		t.Fatalf("round = %+v, want round 2 active", round)
	}
}

func TestConfigBind(t *testing.T) {
	cfg := NewConfig()
	fs := flag.NewFlagSet("gui", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse([]string{"-variant", "lenient", "-tps", "30", "-sound=false"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Variant != "lenient" || cfg.TPS != 30 || cfg.Sound || cfg.Scale != 2 {
		t.Errorf("config = %+v", cfg)
	}
}

func TestLayoutFitsField(t *testing.T) {
	w, h := Layout(game.Classic)
	if w <= 0 || float64(h) <= game.Classic.Limit() {
		t.Errorf("Layout = %dx%d, too small for limit %v", w, h, game.Classic.Limit())
	}
}

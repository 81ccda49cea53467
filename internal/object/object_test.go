package object

import (
	"strings"
	"testing"
	"time"

	"github.com/tomz197/linedrop/internal/draw"
)

func TestFieldMapping(t *testing.T) {
	f := Field{Width: 120, TopMargin: 20, Target: 300, Limit: 400}
	if h := f.Height(); h != 420 {
		t.Fatalf("Height() = %v, want 420", h)
	}
	if y := f.Y(300); y != 320 {
		t.Fatalf("Y(300) = %v, want 320", y)
	}
}

func TestParticlesExpire(t *testing.T) {
	objs := Burst(10, 10, BurstSize(100), 20, 0.5, draw.PenMarker)
	if len(objs) != 20 {
		t.Fatalf("burst of %d particles, want 20", len(objs))
	}

	ctx := UpdateContext{Delta: 100 * time.Millisecond}
	objs, err := UpdateAll(objs, ctx)
	if err != nil {
		t.Fatalf("UpdateAll: %v", err)
	}
	if len(objs) != 20 {
		t.Fatalf("%d particles alive after 0.1s, want 20", len(objs))
	}

	// Lifetimes never exceed 0.5s.
	for i := 0; i < 5; i++ {
		objs, _ = UpdateAll(objs, ctx)
	}
	if len(objs) != 0 {
		t.Fatalf("%d particles alive after 0.6s, want 0", len(objs))
	}
}

func TestBurstSizeForMiss(t *testing.T) {
	if n := BurstSize(0); n != 0 {
		t.Fatalf("BurstSize(0) = %d, want 0", n)
	}
}

func TestMarkerDrawsOnCanvas(t *testing.T) {
	field := Field{Width: 120, TopMargin: 20, Target: 300, Limit: 400}
	canvas := draw.NewScaledCanvas(60, 21, field.Width, field.Height())
	ctx := DrawContext{Canvas: canvas, Field: field}

	if err := (Marker{Position: 300, Width: 30}).Draw(ctx); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	var buf strings.Builder
	if err := canvas.Render(&buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), draw.ColorBrightGreen) {
		t.Fatal("marker not rendered")
	}
}

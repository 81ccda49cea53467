package draw

import (
	"bytes"
	"strings"
	"testing"
)

func TestRenderWritesOnlyChangedCells(t *testing.T) {
	c := NewScaledCanvas(10, 5, 10, 10)

	var first bytes.Buffer
	if err := c.Render(&first); err != nil {
		t.Fatalf("Render: %v", err)
	}
	// First frame paints every cell as blank.
	if got := strings.Count(first.String(), " "); got != 50 {
		t.Fatalf("first render painted %d blanks, want 50", got)
	}

	var second bytes.Buffer
	if err := c.Render(&second); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if second.Len() != 0 {
		t.Fatalf("unchanged frame wrote %q", second.String())
	}

	c.Set(3, 0, PenMarker)
	var third bytes.Buffer
	c.Render(&third)
	out := third.String()
	if !strings.Contains(out, "\033[1;4H") || !strings.ContainsRune(out, BlockUpperHalf) {
		t.Fatalf("changed frame = %q, want upper half block at 1;4", out)
	}
	if !strings.Contains(out, ColorBrightGreen) {
		t.Fatalf("changed frame = %q, missing marker color", out)
	}
}

func TestRenderHalfBlocks(t *testing.T) {
	c := NewScaledCanvas(3, 1, 3, 2)
	c.Set(0, 0, PenTarget)
	c.Set(1, 1, PenTarget)
	c.Set(2, 0, PenTarget)
	c.Set(2, 1, PenTarget)

	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	for _, r := range []rune{BlockUpperHalf, BlockLowerHalf, BlockFull} {
		if !strings.ContainsRune(out, r) {
			t.Errorf("render %q missing %q", out, r)
		}
	}
}

func TestMarkTextDirtyRepaints(t *testing.T) {
	c := NewScaledCanvas(4, 2, 4, 4)
	c.Render(&bytes.Buffer{})

	c.MarkTextDirty(2, 1, 2)
	var buf bytes.Buffer
	c.Render(&buf)
	out := buf.String()
	if !strings.Contains(out, "\033[1;2H") || !strings.Contains(out, "\033[1;3H") {
		t.Fatalf("dirty cells not repainted: %q", out)
	}
	if strings.Contains(out, "\033[2;1H") {
		t.Fatalf("clean cell repainted: %q", out)
	}
}

func TestOffsetAppliesToRender(t *testing.T) {
	c := NewScaledCanvas(2, 1, 2, 2)
	c.SetOffset(5, 3)
	var buf bytes.Buffer
	c.Render(&buf)
	if !strings.Contains(buf.String(), "\033[4;6H") {
		t.Fatalf("render %q not offset", buf.String())
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 2, 1)
	cw.WriteAt(3, 4, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != "\033[5;5Hhi" {
		t.Fatalf("output = %q", out.String())
	}
}

func TestChunkWriterStyled(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	cw.WriteStyledAt(1, 2, ColorRed, "Miss!")
	cw.WriteStyledAt(1, 3, "", "plain")
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "\033[2;1H" + ColorRed + "Miss!" + ColorReset + "\033[3;1Hplain"
	if out.String() != want {
		t.Fatalf("output = %q, want %q", out.String(), want)
	}
	out.Reset()
	if err := cw.Flush(); err != nil || out.Len() != 0 {
		t.Fatalf("second Flush wrote %q, err %v", out.String(), err)
	}
}

func TestChunkWriterFlushesLargeFrames(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 0, 0)
	big := strings.Repeat("x", maxChunkSize*3+7)
	cw.WriteString(big)
	if err := cw.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if out.String() != big {
		t.Fatalf("flushed %d bytes, want %d", out.Len(), len(big))
	}
}

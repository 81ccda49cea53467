package sound

import (
	"testing"
	"time"

	"github.com/tomz197/linedrop/internal/game"
)

func TestResultTone(t *testing.T) {
	tests := []struct {
		points   int
		wantFreq float64
		wantLen  time.Duration
	}{
		{game.PointsPerfect, 1046.5, toneLength},
		{game.PointsGreat, 880, toneLength},
		{game.PointsGood, 659.3, toneLength},
		{game.PointsClose, 523.3, toneLength},
		{game.PointsMiss, missFreq, missLength},
	}
	for _, tt := range tests {
		freq, length := ResultTone(game.Result{Points: tt.points})
		if freq != tt.wantFreq || length != tt.wantLen {
			t.Errorf("ResultTone(%d) = %v,%v want %v,%v", tt.points, freq, length, tt.wantFreq, tt.wantLen)
		}
	}
}

func TestResultToneRisesWithScore(t *testing.T) {
	prev := 0.0
	for _, points := range []int{game.PointsMiss, game.PointsClose, game.PointsGood, game.PointsGreat, game.PointsPerfect} {
		freq, _ := ResultTone(game.Result{Points: points})
		if freq <= prev {
			t.Errorf("tone for %d points (%v Hz) not above previous %v Hz", points, freq, prev)
		}
		prev = freq
	}
}

func TestToneLength(t *testing.T) {
	s, err := Tone(440, 10*time.Millisecond)
	if err != nil {
		t.Fatalf("Tone: %v", err)
	}
	want := sampleRate.N(10 * time.Millisecond)
	buf := make([][2]float64, 256)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		for i := 0; i < n; i++ {
			if buf[i][0] < -1 || buf[i][0] > 1 {
				t.Fatalf("sample %d out of range: %v", i, buf[i][0])
			}
		}
		if !ok {
			break
		}
	}
	if total != want {
		t.Errorf("streamed %d samples, want %d", total, want)
	}
}

func TestSilentPlayerIsNoop(t *testing.T) {
	p := New()
	if p.Enabled() {
		t.Fatal("new player should not be enabled")
	}
	p.PlayStart()
	p.PlayResult(game.Result{Points: game.PointsPerfect})
	p.Close()
}

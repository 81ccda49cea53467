package server

import (
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/linedrop/internal/game"
)

func TestRegisterAndUnregister(t *testing.T) {
	s := NewServer(zerolog.Nop())

	a := s.RegisterClient("alice")
	b := s.RegisterClient("bob")
	if a.ID == b.ID {
		t.Fatalf("duplicate client ids %d", a.ID)
	}
	s.Step()
	if n := s.GetSnapshot().Players; n != 2 {
		t.Fatalf("players = %d, want 2", n)
	}

	s.UnregisterClient(a.ID)
	s.Step()
	if n := s.GetSnapshot().Players; n != 1 {
		t.Fatalf("players = %d, want 1", n)
	}
	if _, ok := <-a.EventsCh; ok {
		t.Fatal("events channel of unregistered client still open")
	}
}

func TestReportResultDoesNotBlock(t *testing.T) {
	s := NewServer(zerolog.Nop())
	h := s.RegisterClient("carol")
	for i := 0; i < 1000; i++ {
		s.ReportResult(h.ID, game.Result{Round: i + 1, Points: 100, Label: game.LabelPerfect})
	}
	s.Step()
}

func TestShutdownNotifiesAndWaits(t *testing.T) {
	s := NewServer(zerolog.Nop())
	h := s.RegisterClient("dave")

	go func() {
		ev, ok := <-h.EventsCh
		if ok && ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
		}
	}()

	done := make(chan struct{})
	go func() {
		s.Shutdown(5 * time.Second)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return after the client left")
	}
}

func TestShutdownTimesOut(t *testing.T) {
	s := NewServer(zerolog.Nop())
	s.RegisterClient("erin")

	start := time.Now()
	s.Shutdown(300 * time.Millisecond)
	if elapsed := time.Since(start); elapsed < 300*time.Millisecond {
		t.Fatalf("Shutdown returned after %v, want at least the timeout", elapsed)
	}
}

func TestTruncateName(t *testing.T) {
	if got := TruncateName("short"); got != "short" {
		t.Fatalf("TruncateName(short) = %q", got)
	}
	long := "abcdefghijklmnopqrstuvwxyz"
	if got := TruncateName(long); len([]rune(got)) != 16 {
		t.Fatalf("TruncateName(long) = %q", got)
	}
}

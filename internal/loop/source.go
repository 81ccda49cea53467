package loop

import "time"

// FrameSource delivers the "next frame" signal that advances a round.
// A source is created per round and stopped as soon as the round leaves the
// active phase.
type FrameSource interface {
	Frames() <-chan time.Time
	Stop()
}

// NewFrameSource creates a fresh FrameSource.
type NewFrameSource func() FrameSource

// tickerSource is a FrameSource backed by time.Ticker.
type tickerSource struct {
	t *time.Ticker
}

// TickerSource returns a factory for ticker-driven frame sources firing every interval.
func TickerSource(interval time.Duration) NewFrameSource {
	return func() FrameSource {
		return &tickerSource{t: time.NewTicker(interval)}
	}
}

func (s *tickerSource) Frames() <-chan time.Time {
	return s.t.C
}

func (s *tickerSource) Stop() {
	s.t.Stop()
}

// Package sound plays short feedback tones for round events.
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/linedrop/internal/game"
)

const (
	sampleRate = beep.SampleRate(44100)

	startFreq = 440.0
	missFreq  = 110.0

	toneLength = 120 * time.Millisecond
	missLength = 250 * time.Millisecond
)

// tierFreqs maps awarded points to a tone; better scores sound higher.
var tierFreqs = map[int]float64{
	game.PointsPerfect: 1046.5,
	game.PointsGreat:   880,
	game.PointsGood:    659.3,
	game.PointsClose:   523.3,
}

// Player owns the speaker. A Player that failed to initialize stays silent.
type Player struct {
	mu          sync.Mutex
	initialized bool
}

// New returns an uninitialized, silent player.
func New() *Player {
	return &Player{}
}

// Init opens the audio device. Failure is not fatal; the game runs without sound.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	p.initialized = true
	return nil
}

// Enabled reports whether the speaker is open.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Close releases the audio device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	p.initialized = false
}

// PlayStart plays the round start blip.
func (p *Player) PlayStart() {
	p.play(startFreq, toneLength)
}

// PlayResult plays a tone matching the round's tier.
func (p *Player) PlayResult(res game.Result) {
	freq, length := ResultTone(res)
	p.play(freq, length)
}

func (p *Player) play(freq float64, length time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	s, err := Tone(freq, length)
	if err != nil {
		return
	}
	speaker.Play(s)
}

// ResultTone returns the frequency and length used for a result.
func ResultTone(res game.Result) (float64, time.Duration) {
	if freq, ok := tierFreqs[res.Points]; ok {
		return freq, toneLength
	}
	return missFreq, missLength
}

// Tone builds a quiet sine tone of the given length.
func Tone(freq float64, length time.Duration) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(length), sine),
		Base:     2,
		Volume:   -2,
	}, nil
}

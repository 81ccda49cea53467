package gui

import (
	"flag"

	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop/config"
)

// Config represents the command-line parameters for the window build.
type Config struct {
	Variant string
	Scale   int
	TPS     int
	Sound   bool
}

// NewConfig returns a Config populated with defaults.
func NewConfig() *Config {
	return &Config{Variant: game.DefaultVariant, Scale: 2, TPS: config.TickRate, Sound: true}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "game variant (classic, swift, lenient)")
	fs.IntVar(&c.Scale, "scale", c.Scale, "window scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play feedback tones")
}

// Layout sizes the logical screen from the playfield geometry.
func Layout(v game.Variant) (width, height int) {
	return int(config.ViewWidth) * 4, int(config.ViewTopMargin+v.Limit()) + 40
}

package main

import (
	"flag"
	"fmt"

	"github.com/tomz197/linedrop/internal/config"
	"github.com/tomz197/linedrop/internal/game"
)

// Front-ends selectable with -ui.
const (
	uiTcell = "tcell"
	uiANSI  = "ansi"
)

// Config represents the command-line parameters for local play.
type Config struct {
	Variant string
	UI      string
	Sound   bool
	LogFile string
}

// NewConfig returns a Config with defaults taken from the environment.
func NewConfig() *Config {
	return &Config{
		Variant: config.GetEnv("LINEDROP_VARIANT", game.DefaultVariant),
		UI:      uiTcell,
		Sound:   true,
		LogFile: config.GetEnv("LINEDROP_LOG", ""),
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Variant, "variant", c.Variant, "game variant (classic, swift, lenient)")
	fs.StringVar(&c.UI, "ui", c.UI, "front-end: tcell or ansi")
	fs.BoolVar(&c.Sound, "sound", c.Sound, "play feedback tones (tcell only)")
	fs.StringVar(&c.LogFile, "log", c.LogFile, "append logs to this file")
}

// Validate checks the flag combination and resolves the variant.
func (c *Config) Validate() (game.Variant, error) {
	if c.UI != uiTcell && c.UI != uiANSI {
		return game.Variant{}, fmt.Errorf("unknown ui %q (want %s or %s)", c.UI, uiTcell, uiANSI)
	}
	v, err := game.LookupVariant(c.Variant)
	if err != nil {
		return game.Variant{}, fmt.Errorf("variant: %w", err)
	}
	return v, nil
}

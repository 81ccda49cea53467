//go:build ebiten

package main

import (
	"errors"
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/linedrop/internal/config"
	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/gui"
	"github.com/tomz197/linedrop/internal/logging"
	"github.com/tomz197/linedrop/internal/sound"
)

func main() {
	_ = config.LoadDotEnv()
	log := logging.Setup(config.GetEnv("LOG_LEVEL", "info"), os.Stderr)

	cfg := gui.NewConfig()
	cfg.Variant = config.GetEnv("LINEDROP_VARIANT", cfg.Variant)
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	variant, err := game.LookupVariant(cfg.Variant)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid variant")
	}

	player := sound.New()
	if cfg.Sound {
		if err := player.Init(); err != nil {
			// Non-fatal, game can run without sound
			log.Warn().Err(err).Msg("audio initialization failed")
		}
	}
	defer player.Close()
	log.Info().Bool("enabled", player.Enabled()).Msg("sound")

	driver, err := gui.NewDriver(variant, func(res game.Result) {
		log.Debug().
			Int("round", res.Round).
			Int("points", res.Points).
			Str("label", res.Label).
			Float64("distance", res.Distance).
			Bool("overshoot", res.Overshoot).
			Msg("round finished")
		player.PlayResult(res)
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create game")
	}

	g, err := gui.New(driver)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create window")
	}
	w, h := gui.Layout(variant)

	ebiten.SetWindowTitle("Line Drop - " + variant.Name)
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w*cfg.Scale/2, h*cfg.Scale/2)

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal().Err(err).Msg("game exited")
	}
}

package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/tomz197/linedrop/internal/config"
	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/logging"
	"github.com/tomz197/linedrop/internal/loop/client"
	"github.com/tomz197/linedrop/internal/loop/server"
	"github.com/tomz197/linedrop/internal/sound"
	"github.com/tomz197/linedrop/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// run parses args and plays until the player quits or a signal arrives.
// Deferred cleanup always runs before main decides the exit code.
func run(args []string) error {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}

	cfg := NewConfig()
	fs := flag.NewFlagSet("linedrop", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	variant, err := cfg.Validate()
	if err != nil {
		return err
	}

	// Stdout is the game screen, so logs go to a file or nowhere.
	logOut, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logOut.Close()
	logger := logging.Setup(config.GetEnv("LOG_LEVEL", "info"), logOut)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("ui", cfg.UI).Str("variant", variant.Name).Msg("starting local game")

	switch cfg.UI {
	case uiANSI:
		err = runANSI(ctx, variant, logger)
	default:
		err = runTcell(ctx, variant, cfg.Sound, logger)
	}
	if err != nil {
		logger.Error().Err(err).Msg("game error")
		return fmt.Errorf("game error: %w", err)
	}
	return nil
}

// runANSI plays in raw mode on stdin/stdout, the same client the SSH server runs.
func runANSI(ctx context.Context, variant game.Variant, logger zerolog.Logger) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// A local hub keeps the client on the same code path as SSH sessions.
	hub := server.NewServer(logger)
	hubCtx, cancelHub := context.WithCancel(ctx)
	defer cancelHub()
	go hub.Run(hubCtx)

	c, err := client.NewClient(hub, bufio.NewReader(os.Stdin), os.Stdout, client.ClientOptions{
		Username: localUsername(),
		Variant:  variant,
		Logger:   logger,
	})
	if err != nil {
		return err
	}
	return c.Run(ctx)
}

// runTcell plays on a tcell screen with mouse support and optional sound.
func runTcell(ctx context.Context, variant game.Variant, withSound bool, logger zerolog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	player := sound.New()
	if withSound {
		if err := player.Init(); err != nil {
			// Non-fatal, game can run without sound
			logger.Warn().Err(err).Msg("audio initialization failed")
		}
	}
	defer player.Close()
	logger.Info().Bool("enabled", player.Enabled()).Msg("sound")

	ui, err := tui.New(screen, tui.Options{
		Variant: variant,
		Sound:   player,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if err := ui.Run(ctx); err != nil {
		return err
	}
	if ui.Quit() {
		logger.Info().Msg("player quit")
	} else {
		logger.Info().Msg("interrupted")
	}
	return nil
}

func localUsername() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return server.TruncateName(u.Username)
	}
	return "local"
}

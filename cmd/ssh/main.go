package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/rs/zerolog"

	"github.com/tomz197/linedrop/internal/config"
	"github.com/tomz197/linedrop/internal/draw"
	"github.com/tomz197/linedrop/internal/game"
	applog "github.com/tomz197/linedrop/internal/logging"
	"github.com/tomz197/linedrop/internal/loop/client"
	"github.com/tomz197/linedrop/internal/loop/server"
)

const (
	defaultHost          = "::"
	defaultPort          = 2222
	defaultHostKeyPath   = "/app/keys/host_key"
	defaultShutdownGrace = 15 * time.Second
)

// app holds what every SSH session shares: the hub and the variant.
type app struct {
	hub     *server.Server
	variant game.Variant
	log     zerolog.Logger
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}
	log := applog.Setup(config.GetEnv("LOG_LEVEL", "info"), os.Stderr)

	host := config.GetEnv("SSH_HOST", defaultHost)
	port, err := listenPort()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid SSH port")
	}
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	grace, err := config.GetEnvDuration("LINEDROP_SHUTDOWN_GRACE", defaultShutdownGrace)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid shutdown grace")
	}
	variant, err := game.LookupVariant(config.GetEnv("LINEDROP_VARIANT", game.DefaultVariant))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid variant")
	}
	workingDir, workErr := os.Getwd()
	if workErr != nil {
		log.Warn().Err(workErr).Msg("failed to get working directory")
	}
	log.Info().
		Str("host", host).
		Int("port", port).
		Str("host_key", hostKeyPath).
		Str("working_dir", workingDir).
		Str("variant", variant.Name).
		Msg("SSH config")

	// Start the session hub shared by all SSH clients
	hubCtx, cancelHub := context.WithCancel(context.Background())
	a := &app{
		hub:     server.NewServer(log),
		variant: variant,
		log:     log,
	}
	go a.hub.Run(hubCtx)
	log.Info().Msg("session hub started")

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	opts := []ssh.Option{
		wish.WithAddress(addr),
		wish.WithMiddleware(
			a.gameMiddleware,
			activeterm.Middleware(),
			logging.Middleware(),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create server")
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	log.Info().Str("addr", addr).Msg("starting SSH server")
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-done
	log.Info().Msg("shutting down server")

	// Notify players and wait for them to disconnect
	log.Info().Dur("grace", grace).Msg("notifying connected players about shutdown")
	a.hub.Shutdown(grace)
	cancelHub()
	log.Info().Msg("session hub stopped")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("shutdown error")
	}
}

// listenPort reads SSH_PORT and rejects values outside the TCP port range.
func listenPort() (int, error) {
	port, err := config.GetEnvInt("SSH_PORT", defaultPort)
	if err != nil {
		return 0, err
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("env SSH_PORT: %d out of range", port)
	}
	return port, nil
}

// gameMiddleware handles SSH sessions and runs the game client.
func (a *app) gameMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		log := a.log.With().Str("user", sess.User()).Logger()
		log.Info().
			Str("terminal", pty.Term).
			Int("width", pty.Window.Width).
			Int("height", pty.Window.Height).
			Msg("new game session")

		// Create a terminal size tracker that updates on window changes
		sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

		// Listen for window size changes in a goroutine
		go func() {
			for win := range winCh {
				sizeTracker.update(win.Width, win.Height)
			}
		}()

		c, err := client.NewClient(a.hub, bufio.NewReader(sess), sess, client.ClientOptions{
			TermSizeFunc: sizeTracker.getSize,
			Username:     server.TruncateName(sess.User()),
			Variant:      a.variant,
			Logger:       a.log,
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to create client")
			return
		}
		if err := c.Run(sess.Context()); err != nil {
			log.Error().Err(err).Msg("game error")
		}

		log.Info().Msg("session ended")
		next(sess)
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize

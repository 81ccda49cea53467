package main

import (
	_ "embed"
	"net"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/tomz197/linedrop/internal/config"
	"github.com/tomz197/linedrop/internal/logging"
	"github.com/tomz197/linedrop/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage string

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn().Err(err).Msg("failed to load .env")
	}
	log.Logger = logging.Setup(config.GetEnv("LOG_LEVEL", "info"), os.Stderr)

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")

	srv := web.New(htmlPage, sshHost, log.Logger)

	addr := net.JoinHostPort(host, port)
	log.Info().Str("addr", addr).Str("ssh_host", sshHost).Msg("starting web server")
	if err := srv.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// Package server tracks connected players for the SSH front-end. It holds no
// game state: every client plays its own rounds.
package server

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomz197/linedrop/internal/game"
	"github.com/tomz197/linedrop/internal/loop/config"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation, enabling
// testing and a standalone local mode.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	ReportResult(clientID int, res game.Result)
	GetSnapshot() *LobbySnapshot
}

// Server tracks connected clients, publishes lobby snapshots and broadcasts
// shutdown notices. It never sees or changes a client's rounds.
type Server struct {
	snapshot     atomic.Pointer[LobbySnapshot]
	clients      map[int]*ClientHandle
	nextClientID int
	registerCh   chan *ClientHandle
	unregisterCh chan int
	resultCh     chan ClientResult
	mu           sync.RWMutex
	log          zerolog.Logger
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (shutdown, etc.)
}

// ClientResult is a finished round reported by a client.
type ClientResult struct {
	ClientID int
	Result   game.Result
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type ClientEventType
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventServerShutdown ClientEventType = iota
)

// NewServer creates a new server.
func NewServer(logger zerolog.Logger) *Server {
	s := &Server{
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		resultCh:     make(chan ClientResult, 256),
		log:          logger,
	}

	s.snapshot.Store(&LobbySnapshot{})
	return s
}

// Run starts the server loop. Blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) {
	ticker := time.NewTicker(config.ServerTickTime)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Step()
		}
	}
}

// Step processes pending registrations and results and publishes a new
// snapshot. Run calls it on every server tick.
func (s *Server) Step() {
	s.processRegistrations()
	s.collectResults()
	s.createSnapshot()
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
// The caller should cancel the server context after Shutdown returns.
func (s *Server) Shutdown(timeout time.Duration) {
	// Pick up registrations that have not been processed yet.
	s.processRegistrations()

	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			s.processRegistrations()
			s.mu.RLock()
			remaining := len(s.clients)
			s.mu.RUnlock()
			if remaining == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	handle := &ClientHandle{
		ID:       id,
		Username: TruncateName(username),
		EventsCh: make(chan ClientEvent, 16),
	}

	s.registerCh <- handle
	return handle
}

// UnregisterClient removes a client from the server.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// ReportResult queues a finished round for the server log.
func (s *Server) ReportResult(clientID int, res game.Result) {
	select {
	case s.resultCh <- ClientResult{ClientID: clientID, Result: res}:
	default:
		// Result channel full, drop the log entry
	}
}

// GetSnapshot returns the current lobby snapshot.
func (s *Server) GetSnapshot() *LobbySnapshot {
	return s.snapshot.Load()
}

// processRegistrations handles pending client registrations/unregistrations.
func (s *Server) processRegistrations() {
	for {
		select {
		case handle := <-s.registerCh:
			s.mu.Lock()
			s.clients[handle.ID] = handle
			s.mu.Unlock()
			s.log.Debug().Int("client", handle.ID).Str("user", handle.Username).Msg("client registered")
		case clientID := <-s.unregisterCh:
			s.mu.Lock()
			if handle, ok := s.clients[clientID]; ok {
				close(handle.EventsCh)
				delete(s.clients, clientID)
			}
			s.mu.Unlock()
			s.log.Debug().Int("client", clientID).Msg("client unregistered")
		default:
			return
		}
	}
}

// collectResults logs reported results.
func (s *Server) collectResults() {
	for {
		select {
		case cr := <-s.resultCh:
			s.mu.RLock()
			user := ""
			if handle, ok := s.clients[cr.ClientID]; ok {
				user = handle.Username
			}
			s.mu.RUnlock()
			s.log.Info().
				Int("client", cr.ClientID).
				Str("user", user).
				Int("round", cr.Result.Round).
				Int("points", cr.Result.Points).
				Str("label", cr.Result.Label).
				Float64("distance", cr.Result.Distance).
				Bool("overshoot", cr.Result.Overshoot).
				Msg("round finished")
		default:
			return
		}
	}
}

// createSnapshot publishes an immutable snapshot of the lobby.
func (s *Server) createSnapshot() {
	s.mu.RLock()
	players := len(s.clients)
	s.mu.RUnlock()

	s.snapshot.Store(&LobbySnapshot{Players: players})
}

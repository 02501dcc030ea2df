// Package server implements the line-oriented game protocol: a TCP accept
// loop handing each connection to its own session goroutine.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"wordled/internal/broadcast"
	"wordled/internal/services/account"
	"wordled/internal/services/dictionary"
	"wordled/internal/services/registry"
	"wordled/internal/services/round"
)

// Config holds configuration for the TCP game server
type Config struct {
	Host string
	Port int

	// ShutdownTimeout bounds how long Shutdown waits for in-flight
	// sessions to finish.
	ShutdownTimeout time.Duration
}

// DefaultConfig returns sensible defaults for server configuration
func DefaultConfig() Config {
	return Config{
		Host:            "",
		Port:            9999,
		ShutdownTimeout: 30 * time.Second,
	}
}

// Deps are the shared collaborators every session works against.
type Deps struct {
	Accounts   *account.Service
	Registry   *registry.Service
	Round      *round.Service
	Dictionary *dictionary.Service
	Publisher  broadcast.Publisher
}

// Server accepts client connections and runs one session per connection.
type Server struct {
	cfg    Config
	deps   Deps
	logger *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   bool

	wg sync.WaitGroup
}

// New creates a new game server
func New(cfg Config, deps Deps, logger *slog.Logger) *Server {
	return &Server{
		cfg:    cfg,
		deps:   deps,
		logger: logger.With(slog.String("component", "server")),
	}
}

// Start listens for connections and blocks until the listener is closed.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		_ = listener.Close()
		return nil
	}
	s.listener = listener
	s.mu.Unlock()

	s.logger.Info("game server started", slog.String("addr", listener.Addr().String()))

	for {
		conn, err := listener.Accept()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if closed || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accepting connection: %w", err)
		}

		sess := newSession(conn, s.deps, s.logger)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			sess.serve(ctx)
		}()
	}
}

// Shutdown stops accepting connections and waits for in-flight sessions.
// Sessions blocked on a client read are abandoned once the timeout passes;
// their deferred cleanup still releases registry slots when the process
// lives on.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down game server")

	s.mu.Lock()
	s.closed = true
	listener := s.listener
	s.mu.Unlock()

	if listener != nil {
		if err := listener.Close(); err != nil {
			return fmt.Errorf("closing listener: %w", err)
		}
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	timeout := s.cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultConfig().ShutdownTimeout
	}

	select {
	case <-done:
		s.logger.Info("game server stopped")
		return nil
	case <-time.After(timeout):
		s.logger.Warn("shutdown timed out with sessions still open")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Addr returns the server's listen address, once listening.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	}
	return s.listener.Addr().String()
}

// Package admin exposes a small read-only HTTP endpoint for health checks
// and operational visibility. The game protocol itself stays on TCP.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"wordled/internal/model"
	"wordled/internal/services/account"
	"wordled/internal/services/registry"
	"wordled/internal/services/round"
)

// Config holds configuration for the admin HTTP server
type Config struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns sensible defaults for admin server configuration
func DefaultConfig() Config {
	return Config{
		Host:            "",
		Port:            8080,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Deps are the services the admin endpoint reads from.
type Deps struct {
	Accounts *account.Service
	Registry *registry.Service
	Round    *round.Service
}

// Server wraps the HTTP server with graceful shutdown support
type Server struct {
	server *http.Server
	logger *slog.Logger
	config Config
	deps   Deps
}

// NewServer creates a new admin server
func NewServer(deps Deps, config Config, logger *slog.Logger) *Server {
	s := &Server{
		logger: logger.With(slog.String("component", "admin")),
		config: config,
		deps:   deps,
	}

	router := mux.NewRouter()
	router.Use(Logging(s.logger))
	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/round", s.handleRound).Methods(http.MethodGet)
	router.HandleFunc("/stats/{username}", s.handleStats).Methods(http.MethodGet)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Host, config.Port),
		Handler:      router,
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	return s
}

// Start begins listening for HTTP requests
func (s *Server) Start() error {
	s.logger.Info("starting admin server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("admin server error: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("admin shutdown error: %w", err)
	}

	s.logger.Info("admin server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	// The secret word is deliberately not exposed.
	_, roundID := s.deps.Round.Current()
	writeJSON(w, http.StatusOK, map[string]any{
		"round":           roundID,
		"active_sessions": s.deps.Registry.ActiveCount(),
	})
}

type statsResponse struct {
	Username          string      `json:"username"`
	GamesPlayed       int         `json:"games_played"`
	Wins              int         `json:"wins"`
	CurrentStreak     int         `json:"current_streak"`
	MaxStreak         int         `json:"max_streak"`
	GuessDistribution map[int]int `json:"guess_distribution"`
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]

	user, err := s.deps.Accounts.Get(r.Context(), username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		s.logger.Error("stats lookup failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{
		Username:          user.Username,
		GamesPlayed:       user.Stats.GamesPlayed,
		Wins:              user.Stats.Wins,
		CurrentStreak:     user.Stats.CurrentStreak,
		MaxStreak:         user.Stats.MaxStreak,
		GuessDistribution: user.GuessDistribution,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

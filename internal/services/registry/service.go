// Package registry tracks which usernames currently hold an active
// session. Registry membership is the sole authority for "is this account
// active": authentication success alone never implies login.
package registry

import (
	"log/slog"
	"sync"

	"wordled/internal/model"
)

// Service is the in-memory login registry. It enforces at most one active
// session per account.
type Service struct {
	logger *slog.Logger

	mu       sync.Mutex
	loggedIn map[string]struct{}
}

// New creates a new session registry
func New(logger *slog.Logger) *Service {
	return &Service{
		logger:   logger.With(slog.String("component", "registry")),
		loggedIn: make(map[string]struct{}),
	}
}

// Login marks the username as active. Returns model.ErrAlreadyLoggedIn if
// another session already holds the account.
func (s *Service) Login(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.loggedIn[username]; ok {
		return model.ErrAlreadyLoggedIn
	}
	s.loggedIn[username] = struct{}{}

	s.logger.Info("user logged in", slog.String("username", username))
	return nil
}

// Logout releases the username's session slot. Returns
// model.ErrNotLoggedIn if the account has no active session.
func (s *Service) Logout(username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.loggedIn[username]; !ok {
		return model.ErrNotLoggedIn
	}
	delete(s.loggedIn, username)

	s.logger.Info("user logged out", slog.String("username", username))
	return nil
}

// IsLoggedIn reports whether the username has an active session.
func (s *Service) IsLoggedIn(username string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.loggedIn[username]
	return ok
}

// ActiveCount returns the number of active sessions.
func (s *Service) ActiveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loggedIn)
}

// Package account implements the user store: registration, authentication,
// and atomic read-modify-write updates of user records.
package account

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"wordled/internal/dependencies/clock"
	"wordled/internal/model"
	"wordled/internal/storage"
)

// Service mediates all access to persisted user records. Operations on the
// same username are serialized; the store itself never merges concurrent
// partial updates, the last writer wins.
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	logger  *slog.Logger

	// Guards read-modify-write cycles. A single lock is enough at the
	// expected load; per-key striping would only complicate the invariants.
	mu sync.Mutex
}

// New creates a new account Service
func New(storage storage.Storage, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		logger:  logger.With(slog.String("component", "account")),
	}
}

// TryRegister creates a new user record with zeroed statistics.
// Returns model.ErrEmptyPassword for an empty password and
// model.ErrUserExists when the username is already taken. Passwords are
// opaque strings, so anything non-empty is accepted as-is.
func (s *Service) TryRegister(ctx context.Context, username, password string) error {
	if password == "" {
		return model.ErrEmptyPassword
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.UserExists(ctx, username)
	if err != nil {
		return fmt.Errorf("checking username: %w", err)
	}
	if exists {
		return model.ErrUserExists
	}

	user := model.NewUser(username, password, s.clock.Now())
	if err := s.storage.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("saving user: %w", err)
	}

	s.logger.Info("user registered", slog.String("username", username))
	return nil
}

// Authenticate returns the user record only on an exact match of both
// username and password, otherwise model.ErrBadCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return nil, model.ErrBadCredentials
		}
		return nil, err
	}

	if user.Password != password {
		return nil, model.ErrBadCredentials
	}

	return user, nil
}

// Get returns the stored record for a username.
func (s *Service) Get(ctx context.Context, username string) (*model.User, error) {
	return s.storage.GetUser(ctx, username)
}

// Update replaces the stored record for the user's username.
// Callers that need the latest state must re-read before updating.
func (s *Service) Update(ctx context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.storage.UserExists(ctx, user.Username)
	if err != nil {
		return fmt.Errorf("checking username: %w", err)
	}
	if !exists {
		return model.ErrUserNotFound
	}

	user.UpdatedAt = s.clock.Now()
	return s.storage.SaveUser(ctx, user)
}

// Mutate runs a read-modify-write cycle on the user's record as a single
// atomic operation: the record is re-read, mutated by fn, and written back
// without any other same-username operation interleaving.
func (s *Service) Mutate(ctx context.Context, username string, fn func(*model.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, err := s.storage.GetUser(ctx, username)
	if err != nil {
		return err
	}

	fn(user)
	user.UpdatedAt = s.clock.Now()

	return s.storage.SaveUser(ctx, user)
}

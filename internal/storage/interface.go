package storage

import (
	"context"

	"wordled/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, username string) (*model.User, error)
	UserExists(ctx context.Context, username string) (bool, error)

	// ListUsers returns every persisted user record. Used at startup to
	// repopulate caches and to recover the round counter from historical
	// share messages.
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}

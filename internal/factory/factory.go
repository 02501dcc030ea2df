// Package factory wires the application's services and storage together.
package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"wordled/internal/dependencies/clock"
	"wordled/internal/dependencies/random"
	"wordled/internal/services/account"
	"wordled/internal/services/dictionary"
	"wordled/internal/services/registry"
	"wordled/internal/services/round"
	"wordled/internal/storage"
	"wordled/internal/storage/memory"
	redisstorage "wordled/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Accounts   *account.Service
	Registry   *registry.Service
	Round      *round.Service
	Dictionary *dictionary.Service
}

// Config holds configuration for the application factory
type Config struct {
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RotationInterval is the secret word lifetime
	RotationInterval time.Duration
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg.RotationInterval, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, interval time.Duration, logger *slog.Logger) *App {
	dictService := dictionary.New(store)
	accountService := account.New(store, clk, logger)
	registryService := registry.New(logger)
	roundService := round.New(dictService, rnd, interval, logger)

	return &App{
		Storage:    store,
		Clock:      clk,
		Random:     rnd,
		Accounts:   accountService,
		Registry:   registryService,
		Round:      roundService,
		Dictionary: dictService,
	}
}

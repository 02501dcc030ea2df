package factory

import (
	"log/slog"
	"time"

	"wordled/internal/dependencies/clock"
	"wordled/internal/dependencies/random"
	"wordled/internal/storage"
)

// NewForTesting wires an App against the given dependencies, letting tests
// inject mock clocks, mock randomness, and a prepared storage backend.
func NewForTesting(store storage.Storage, clk clock.Clock, rnd random.Random, logger *slog.Logger) *App {
	return newWithDependencies(store, clk, rnd, time.Minute, logger)
}

// Package round owns the rotating shared secret word and its monotonically
// increasing round ID.
package round

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/samber/lo"

	"wordled/internal/dependencies/random"
	"wordled/internal/model"
	"wordled/internal/protocol"
	"wordled/internal/services/dictionary"
	"wordled/internal/storage"
)

// DefaultInterval is the default secret word lifetime.
const DefaultInterval = 5 * time.Minute

// Service holds the current secret word and round ID. Reads are frequent
// (every guess), writes happen only at startup and on the rotation timer.
type Service struct {
	dictionary *dictionary.Service
	random     random.Random
	logger     *slog.Logger
	interval   time.Duration

	mu   sync.RWMutex
	word string
	id   int64
}

// New creates a new round Service. Rotate or Run must be called before
// Current returns a usable word.
func New(dict *dictionary.Service, rnd random.Random, interval time.Duration, logger *slog.Logger) *Service {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Service{
		dictionary: dict,
		random:     rnd,
		logger:     logger.With(slog.String("component", "round")),
		interval:   interval,
	}
}

// Current returns a consistent snapshot of the secret word and round ID.
// Sessions must never cache the word across requests; a guess is valid
// only while the session's remembered round ID equals the current one.
func (s *Service) Current() (string, int64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.word, s.id
}

// Rotate advances the round ID and replaces the secret word with a fresh
// random pick from the word list.
func (s *Service) Rotate() error {
	n := s.dictionary.WordCount()
	word, err := s.dictionary.Word(s.random.Intn(n))
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.id++
	s.word = word
	id := s.id
	s.mu.Unlock()

	s.logger.Info("secret word rotated", slog.Int64("round", id))
	return nil
}

// Recover seeds the round counter from the highest round number referenced
// in any persisted share message, so a restart never replays an
// already-announced round number. Round numbers are compared numerically.
// The first Rotate after Recover starts the first live round.
func (s *Service) Recover(ctx context.Context, store storage.Storage) error {
	users, err := store.ListUsers(ctx)
	if err != nil {
		return err
	}

	var max int64
	shares := lo.FlatMap(users, func(u *model.User, _ int) []string {
		return u.SharedResults
	})
	for _, share := range shares {
		if id, ok := protocol.ParseShareRound(share); ok && id > max {
			max = id
		}
	}

	s.mu.Lock()
	s.id = max
	s.mu.Unlock()

	s.logger.Info("round counter recovered",
		slog.Int64("round", max),
		slog.Int("share_messages", len(shares)))
	return nil
}

// Run rotates the secret word on a fixed interval until the context is
// cancelled. Call after an initial Rotate.
func (s *Service) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.Rotate(); err != nil {
				s.logger.Error("rotation failed", slog.String("error", err.Error()))
			}
		case <-ctx.Done():
			s.logger.Info("rotation stopped")
			return
		}
	}
}

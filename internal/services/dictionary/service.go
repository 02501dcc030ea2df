// Package dictionary provides the fixed word list: guess validation and
// the pool the rotating secret word is drawn from.
package dictionary

import (
	"bufio"
	"context"
	"os"
	"strings"
	"sync"

	"github.com/samber/lo"

	"wordled/internal/model"
	"wordled/internal/storage"
)

// Service provides word list validation and lookup functionality
type Service struct {
	storage storage.Storage

	mu     sync.RWMutex
	words  []string
	index  map[string]struct{}
	loaded bool
}

// New creates a new dictionary Service
func New(storage storage.Storage) *Service {
	return &Service{
		storage: storage,
		index:   make(map[string]struct{}),
	}
}

// LoadFromStorage loads the word list from storage
func (s *Service) LoadFromStorage(ctx context.Context) error {
	words, err := s.storage.GetDictionaryWords(ctx)
	if err != nil {
		return err
	}
	s.loadWords(words)
	return nil
}

// LoadFromFile loads the word list from a file (one word per line) and
// saves it to storage for future use.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		words = append(words, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	words = lo.FilterMap(words, func(w string, _ int) (string, bool) {
		trimmed := strings.TrimSpace(w)
		return trimmed, trimmed != ""
	})

	if err := s.storage.SaveDictionaryWords(ctx, words); err != nil {
		return err
	}

	s.loadWords(words)
	return nil
}

// LoadWords directly loads a slice of words (useful for testing)
func (s *Service) LoadWords(words []string) {
	s.loadWords(words)
}

func (s *Service) loadWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.words = make([]string, len(words))
	copy(s.words, words)

	s.index = make(map[string]struct{}, len(words))
	for _, word := range words {
		s.index[word] = struct{}{}
	}
	s.loaded = true
}

// IsValidWord checks if a word exists in the word list. Matching is exact:
// the list defines both the alphabet and the word length.
func (s *Service) IsValidWord(word string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded {
		return false
	}

	_, ok := s.index[word]
	return ok
}

// Word returns the word at index i.
func (s *Service) Word(i int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.loaded || len(s.words) == 0 {
		return "", model.ErrDictionaryNotLoaded
	}
	return s.words[i%len(s.words)], nil
}

// WordCount returns the number of words in the word list
func (s *Service) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// WordLength returns the length of the words in the list. The list is
// uniform-length; clients use this to validate guesses before sending.
func (s *Service) WordLength() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.words) == 0 {
		return 0
	}
	return len(s.words[0])
}

// IsLoaded returns whether the word list has been loaded
func (s *Service) IsLoaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loaded
}

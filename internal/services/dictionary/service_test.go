package dictionary

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"wordled/internal/model"
	"wordled/internal/storage/memory"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.service = New(s.storage)
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestNotLoadedInitially() {
	s.False(s.service.IsLoaded())
	s.False(s.service.IsValidWord("apple"))
	s.Equal(0, s.service.WordCount())

	_, err := s.service.Word(0)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestIsValidWordMatchesExactly() {
	s.service.LoadWords([]string{"apple", "beach", "crane"})

	s.True(s.service.IsValidWord("apple"))
	s.False(s.service.IsValidWord("APPLE"))
	s.False(s.service.IsValidWord("apples"))
	s.False(s.service.IsValidWord(""))
}

func (s *ServiceSuite) TestWordWrapsAroundIndex() {
	s.service.LoadWords([]string{"apple", "beach", "crane"})

	word, err := s.service.Word(4)
	s.Require().NoError(err)
	s.Equal("beach", word)
}

func (s *ServiceSuite) TestWordLength() {
	s.service.LoadWords([]string{"lighthouse", "watermelon"})
	s.Equal(10, s.service.WordLength())
}

func (s *ServiceSuite) TestLoadFromFileTrimsAndSkipsBlankLines() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	content := "apple\n\n  beach  \ncrane\n\n"
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	s.Equal(3, s.service.WordCount())
	s.True(s.service.IsValidWord("beach"))
}

func (s *ServiceSuite) TestLoadFromFilePersistsToStorage() {
	path := filepath.Join(s.T().TempDir(), "words.txt")
	s.Require().NoError(os.WriteFile(path, []byte("apple\nbeach\n"), 0o644))

	s.Require().NoError(s.service.LoadFromFile(s.ctx, path))

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"apple", "beach"}, words)
}

func (s *ServiceSuite) TestLoadFromFileFailsForMissingFile() {
	err := s.service.LoadFromFile(s.ctx, filepath.Join(s.T().TempDir(), "missing.txt"))
	s.Error(err)
	s.False(s.service.IsLoaded())
}

func (s *ServiceSuite) TestLoadFromStorage() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"apple", "beach"}))

	s.Require().NoError(s.service.LoadFromStorage(s.ctx))
	s.True(s.service.IsValidWord("apple"))
}

func (s *ServiceSuite) TestLoadFromStorageFailsWhenEmpty() {
	err := s.service.LoadFromStorage(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"wordled/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())
	client := goredis.NewClient(&goredis.Options{Addr: s.mini.Addr()})
	s.storage = NewWithClient(client, DefaultConfig())
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	_ = s.storage.Close()
}

func (s *StorageSuite) TestSaveAndGetUser() {
	user := model.NewUser("alice", "pw", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	user.RecordWin(3)
	user.MarkPlayed(1)
	user.SharedResults = append(user.SharedResults, "Game 1 3/12")

	s.Require().NoError(s.storage.SaveUser(s.ctx, user))

	got, err := s.storage.GetUser(s.ctx, "alice")
	s.Require().NoError(err)
	s.Equal("alice", got.Username)
	s.Equal(1, got.Stats.Wins)
	s.Equal(1, got.GuessDistribution[3])
	s.True(got.HasPlayed(1))
	s.Equal([]string{"Game 1 3/12"}, got.SharedResults)
}

func (s *StorageSuite) TestGetUserNotFound() {
	_, err := s.storage.GetUser(s.ctx, "nobody")
	s.ErrorIs(err, model.ErrUserNotFound)
}

func (s *StorageSuite) TestUserExists() {
	exists, err := s.storage.UserExists(s.ctx, "alice")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.SaveUser(s.ctx, model.NewUser("alice", "pw", time.Now())))

	exists, err = s.storage.UserExists(s.ctx, "alice")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListUsers() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, model.NewUser("alice", "pw", time.Now())))
	s.Require().NoError(s.storage.SaveUser(s.ctx, model.NewUser("bob", "pw", time.Now())))

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 2)

	names := []string{users[0].Username, users[1].Username}
	s.ElementsMatch([]string{"alice", "bob"}, names)
}

func (s *StorageSuite) TestListUsersEmpty() {
	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *StorageSuite) TestListUsersSkipsDanglingIndexEntries() {
	s.Require().NoError(s.storage.SaveUser(s.ctx, model.NewUser("alice", "pw", time.Now())))
	s.mini.Del(userKey("alice"))

	users, err := s.storage.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Empty(users)
}

func (s *StorageSuite) TestDictionaryNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"apple", "beach", "crane"}))

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"apple", "beach", "crane"}, words)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplacesExisting() {
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"apple"}))
	s.Require().NoError(s.storage.SaveDictionaryWords(s.ctx, []string{"beach", "crane"}))

	words, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch([]string{"beach", "crane"}, words)
}

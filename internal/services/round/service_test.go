package round

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"wordled/internal/dependencies/mocks"
	"wordled/internal/model"
	"wordled/internal/protocol"
	"wordled/internal/services/dictionary"
	"wordled/internal/storage/memory"
	"wordled/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage    *memory.Storage
	dictionary *dictionary.Service
	random     *mocks.MockRandom
	service    *Service
	ctx        context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.dictionary = dictionary.New(s.storage)
	s.dictionary.LoadWords([]string{"apple", "beach", "crane"})
	s.random = mocks.NewMockRandom()
	s.service = New(s.dictionary, s.random, time.Minute, testutil.NopLogger())
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestRotateAdvancesRoundAndPicksWord() {
	s.random.QueueIntn(2, 0)

	s.Require().NoError(s.service.Rotate())
	word, id := s.service.Current()
	s.Equal("crane", word)
	s.Equal(int64(1), id)

	s.Require().NoError(s.service.Rotate())
	word, id = s.service.Current()
	s.Equal("apple", word)
	s.Equal(int64(2), id)
}

func (s *ServiceSuite) TestRotateFailsWithoutWordList() {
	svc := New(dictionary.New(s.storage), s.random, time.Minute, testutil.NopLogger())
	s.ErrorIs(svc.Rotate(), model.ErrDictionaryNotLoaded)
}

func (s *ServiceSuite) TestRecoverSeedsFromHighestSharedRound() {
	alice := model.NewUser("alice", "pw", time.Now())
	alice.SharedResults = []string{
		protocol.StoredShare(9, "3"),
		protocol.StoredShare(10, protocol.LossTries),
	}
	bob := model.NewUser("bob", "pw", time.Now())
	bob.SharedResults = []string{protocol.StoredShare(2, "1")}
	s.Require().NoError(s.storage.SaveUser(s.ctx, alice))
	s.Require().NoError(s.storage.SaveUser(s.ctx, bob))

	s.Require().NoError(s.service.Recover(s.ctx, s.storage))

	// Round 10 beats round 9 numerically even though "10" sorts before
	// "9" as text.
	_, id := s.service.Current()
	s.Equal(int64(10), id)

	s.Require().NoError(s.service.Rotate())
	_, id = s.service.Current()
	s.Equal(int64(11), id)
}

func (s *ServiceSuite) TestRecoverWithNoSharesStartsAtZero() {
	s.Require().NoError(s.service.Recover(s.ctx, s.storage))

	_, id := s.service.Current()
	s.Equal(int64(0), id)

	s.Require().NoError(s.service.Rotate())
	_, id = s.service.Current()
	s.Equal(int64(1), id)
}

func (s *ServiceSuite) TestRecoverIgnoresMalformedShares() {
	alice := model.NewUser("alice", "pw", time.Now())
	alice.SharedResults = []string{"garbage", protocol.StoredShare(4, "2")}
	s.Require().NoError(s.storage.SaveUser(s.ctx, alice))

	s.Require().NoError(s.service.Recover(s.ctx, s.storage))
	_, id := s.service.Current()
	s.Equal(int64(4), id)
}

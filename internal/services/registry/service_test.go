package registry

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"wordled/internal/model"
	"wordled/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(testutil.NopLogger())
}

func (s *ServiceSuite) TestLoginSucceeds() {
	s.Require().NoError(s.service.Login("alice"))
	s.True(s.service.IsLoggedIn("alice"))
	s.Equal(1, s.service.ActiveCount())
}

func (s *ServiceSuite) TestSecondLoginIsRejected() {
	s.Require().NoError(s.service.Login("alice"))

	err := s.service.Login("alice")
	s.ErrorIs(err, model.ErrAlreadyLoggedIn)
	s.Equal(1, s.service.ActiveCount())
}

func (s *ServiceSuite) TestDifferentUsersLoginIndependently() {
	s.Require().NoError(s.service.Login("alice"))
	s.Require().NoError(s.service.Login("bob"))
	s.Equal(2, s.service.ActiveCount())
}

func (s *ServiceSuite) TestLogoutReleasesSlot() {
	s.Require().NoError(s.service.Login("alice"))
	s.Require().NoError(s.service.Logout("alice"))

	s.False(s.service.IsLoggedIn("alice"))
	s.Require().NoError(s.service.Login("alice"))
}

func (s *ServiceSuite) TestLogoutWithoutLoginFails() {
	err := s.service.Logout("alice")
	s.ErrorIs(err, model.ErrNotLoggedIn)
}

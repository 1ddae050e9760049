package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/testutil"
)

type FollowTestSuite struct {
	suite.Suite

	ctx        context.Context
	fixture    *testutil.Fixture
	followRepo repository.FollowRepository
}

func TestFollowSuite(t *testing.T) {
	suite.Run(t, new(FollowTestSuite))
}

func (s *FollowTestSuite) SetupTest() {
	s.ctx = testutil.MockContext()
	s.fixture = testutil.NewFixture()
	s.followRepo = repository.NewFollowRepository()
}

func (s *FollowTestSuite) TestCreateIsIdempotent() {
	t := s.T()
	reader := s.fixture.CreateUser(s.ctx)
	author := s.fixture.CreateUser(s.ctx)

	require.NoError(t, s.followRepo.Create(s.ctx, reader.ID, author.ID))
	require.NoError(t, s.followRepo.Create(s.ctx, reader.ID, author.ID))

	followers, err := s.followRepo.CountFollowers(s.ctx, author.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), followers)

	exists, err := s.followRepo.Exists(s.ctx, reader.ID, author.ID)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = s.followRepo.Exists(s.ctx, author.ID, reader.ID)
	require.NoError(t, err)
	require.False(t, exists)
}

func (s *FollowTestSuite) TestDeleteMissingEdge() {
	t := s.T()
	reader := s.fixture.CreateUser(s.ctx)
	author := s.fixture.CreateUser(s.ctx)

	require.NoError(t, s.followRepo.Delete(s.ctx, reader.ID, author.ID))

	require.NoError(t, s.followRepo.Create(s.ctx, reader.ID, author.ID))
	require.NoError(t, s.followRepo.Delete(s.ctx, reader.ID, author.ID))

	following, err := s.followRepo.CountFollowing(s.ctx, reader.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), following)
}

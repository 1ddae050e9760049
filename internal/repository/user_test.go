package repository_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/testutil"
	"gorm.io/gorm"
)

type UserTestSuite struct {
	suite.Suite

	ctx      context.Context
	fixture  *testutil.Fixture
	userRepo repository.UserRepository
}

func TestUserSuite(t *testing.T) {
	suite.Run(t, new(UserTestSuite))
}

func (s *UserTestSuite) SetupTest() {
	s.ctx = testutil.MockContext()
	s.fixture = testutil.NewFixture()
	s.userRepo = repository.NewUserRepository()
}

func (s *UserTestSuite) TestReadWriteUser() {
	t := s.T()
	err := s.userRepo.Create(s.ctx, &entity.User{
		Base:      entity.Base{ID: "id1"},
		Username:  "leo",
		FirstName: "Leo",
		Password:  "hashed",
	})
	require.NoError(t, err)

	user, err := s.userRepo.GetByID(s.ctx, "id1")
	require.NoError(t, err)
	require.Equal(t, "leo", user.Username)

	user, err = s.userRepo.GetByUsername(s.ctx, "leo")
	require.NoError(t, err)
	require.Equal(t, "id1", user.ID)

	_, err = s.userRepo.GetByUsername(s.ctx, "unknown")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func (s *UserTestSuite) TestUsernameIsUnique() {
	s.fixture.CreateUserWithName(s.ctx, "leo")

	err := s.userRepo.Create(s.ctx, &entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		Username: "leo",
		Password: "hashed",
	})
	require.Error(s.T(), err)
	require.True(s.T(), repository.IsDuplicateKey(err))

	require.False(s.T(), repository.IsDuplicateKey(gorm.ErrRecordNotFound))
}

func (s *UserTestSuite) TestDeleteUserCascades() {
	t := s.T()
	author := s.fixture.CreateUser(s.ctx)
	reader := s.fixture.CreateUser(s.ctx)

	post := s.fixture.CreatePost(s.ctx, author, nil, "post of author")
	otherPost := s.fixture.CreatePost(s.ctx, reader, nil, "post of reader")
	s.fixture.CreateComment(s.ctx, author, otherPost, "comment of author")
	s.fixture.CreateFollow(s.ctx, reader, author)
	s.fixture.CreateFollow(s.ctx, author, reader)

	require.NoError(t, s.userRepo.DeleteByID(s.ctx, author.ID))

	postRepo := repository.NewPostRepository()
	_, err := postRepo.GetByID(s.ctx, post.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	comments, err := repository.NewCommentRepository().GetListByPostID(s.ctx, otherPost.ID)
	require.NoError(t, err)
	require.Empty(t, comments)

	followRepo := repository.NewFollowRepository()
	following, err := followRepo.CountFollowing(s.ctx, reader.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), following)

	followers, err := followRepo.CountFollowers(s.ctx, reader.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), followers)
}

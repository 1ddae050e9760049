package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/testutil"
)

func newFeedDomain() *feedDomain {
	followDomain := NewFollowDomain(repository.NewFollowRepository(), repository.NewUserRepository())
	return NewFeedDomain(
		repository.NewPostRepository(),
		repository.NewGroupRepository(),
		repository.NewUserRepository(),
		repository.NewFollowRepository(),
		followDomain,
	)
}

func postTexts(posts []model.Post) []string {
	result := make([]string, 0, len(posts))
	for _, p := range posts {
		result = append(result, p.Text)
	}

	return result
}

func Test_feedDomain_Compose_Pagination(t *testing.T) {
	ctx := testutil.MockContext()
	fixture := testutil.NewFixture()
	author := fixture.CreateUser(ctx)
	for i := 0; i < 13; i++ {
		fixture.CreatePost(ctx, author, nil, fmt.Sprintf("post %d", i))
	}

	domain := newFeedDomain()

	testCases := []struct {
		name       string
		page       string
		wantNumber int
		wantLen    int
		wantFirst  string
	}{
		{name: "first load", page: "", wantNumber: 1, wantLen: 10, wantFirst: "post 12"},
		{name: "second page", page: "2", wantNumber: 2, wantLen: 3, wantFirst: "post 2"},
		{name: "page out of range", page: "100", wantNumber: 2, wantLen: 3, wantFirst: "post 2"},
		{name: "invalid page", page: "abc", wantNumber: 1, wantLen: 10, wantFirst: "post 12"},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			feed, err := domain.Compose(ctx, FeedScope{Kind: FeedAll}, tt.page)
			require.NoError(t, err)
			require.Equal(t, tt.wantNumber, feed.Page.Number)
			require.Equal(t, 2, feed.Page.NumPages)
			require.Equal(t, int64(13), feed.Page.Total)
			require.Len(t, feed.Posts, tt.wantLen)
			require.Equal(t, tt.wantFirst, feed.Posts[0].Text)
		})
	}
}

func Test_feedDomain_Compose_EmptyFeed(t *testing.T) {
	ctx := testutil.MockContext()

	feed, err := newFeedDomain().Compose(ctx, FeedScope{Kind: FeedAll}, "3")
	require.NoError(t, err)
	require.Empty(t, feed.Posts)
	require.Equal(t, 1, feed.Page.Number)
	require.Equal(t, 1, feed.Page.NumPages)
}

func Test_feedDomain_Compose_Followed(t *testing.T) {
	ctx := testutil.MockContext()
	fixture := testutil.NewFixture()
	reader := fixture.CreateUser(ctx)
	followed := fixture.CreateUser(ctx)
	other := fixture.CreateUser(ctx)

	fixture.CreatePost(ctx, followed, nil, "followed post")
	fixture.CreatePost(ctx, other, nil, "other post")
	fixture.CreateFollow(ctx, reader, followed)

	domain := newFeedDomain()

	feed, err := domain.Compose(testutil.WithUser(ctx, reader.ID, reader.Username), FeedScope{Kind: FeedFollowed}, "")
	require.NoError(t, err)
	require.Equal(t, []string{"followed post"}, postTexts(feed.Posts))

	// Authors followed by nobody see an empty feed.
	feed, err = domain.Compose(testutil.WithUser(ctx, other.ID, other.Username), FeedScope{Kind: FeedFollowed}, "")
	require.NoError(t, err)
	require.Empty(t, feed.Posts)

	_, err = domain.Compose(ctx, FeedScope{Kind: FeedFollowed}, "")
	require.True(t, errorx.Is(err, errorx.Unauthenticated))
}

func Test_feedDomain_GetGroupPosts(t *testing.T) {
	ctx := testutil.MockContext()
	fixture := testutil.NewFixture()
	author := fixture.CreateUser(ctx)
	group := fixture.CreateGroup(ctx)
	otherGroup := fixture.CreateGroup(ctx)

	fixture.CreatePost(ctx, author, group, "in group")
	fixture.CreatePost(ctx, author, otherGroup, "in other group")
	fixture.CreatePost(ctx, author, nil, "without group")

	domain := newFeedDomain()
	resp, err := domain.GetGroupPosts(ctx, &model.GetGroupPostsRequest{Slug: group.Slug})
	require.NoError(t, err)
	require.Equal(t, group.Title, resp.Group.Title)
	require.Equal(t, []string{"in group"}, postTexts(resp.Posts))
	require.Equal(t, group.Slug, resp.Posts[0].Group.Slug)

	_, err = domain.GetGroupPosts(ctx, &model.GetGroupPostsRequest{Slug: "missing"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

func Test_feedDomain_GetProfile(t *testing.T) {
	ctx := testutil.MockContext()
	fixture := testutil.NewFixture()
	author := fixture.CreateUser(ctx)
	reader := fixture.CreateUser(ctx)

	fixture.CreatePost(ctx, author, nil, "first")
	fixture.CreatePost(ctx, author, nil, "second")
	fixture.CreatePost(ctx, reader, nil, "reader post")
	fixture.CreateFollow(ctx, reader, author)

	domain := newFeedDomain()

	// Anonymous
	resp, err := domain.GetProfile(ctx, &model.GetProfileRequest{Username: author.Username})
	require.NoError(t, err)
	require.Equal(t, int64(2), resp.PostCount)
	require.Equal(t, int64(1), resp.FollowerCount)
	require.Equal(t, []string{"second", "first"}, postTexts(resp.Posts))
	require.False(t, resp.CanFollow)
	require.False(t, resp.Following)

	// Follower
	resp, err = domain.GetProfile(testutil.WithUser(ctx, reader.ID, reader.Username),
		&model.GetProfileRequest{Username: author.Username})
	require.NoError(t, err)
	require.True(t, resp.CanFollow)
	require.True(t, resp.Following)

	// Owner
	resp, err = domain.GetProfile(testutil.WithUser(ctx, author.ID, author.Username),
		&model.GetProfileRequest{Username: author.Username})
	require.NoError(t, err)
	require.False(t, resp.CanFollow)
	require.False(t, resp.Following)

	_, err = domain.GetProfile(ctx, &model.GetProfileRequest{Username: "ghost"})
	require.True(t, errorx.Is(err, errorx.NotFound))
}

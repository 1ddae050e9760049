package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/authenticator"
	"github.com/yatube-lab/backend/pkg/idutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

const FixturePassword = "Pa55word-fixture"

// Fixture creates records with unique names. Counters are local to the
// fixture so that tests do not depend on each other.
type Fixture struct {
	userCount  int
	groupCount int
	postClock  time.Time
}

func NewFixture() *Fixture {
	return &Fixture{postClock: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (f *Fixture) CreateUser(ctx context.Context) *entity.User {
	f.userCount++
	return f.CreateUserWithName(ctx, fmt.Sprintf("user%d", f.userCount))
}

func (f *Fixture) CreateUserWithName(ctx context.Context, username string) *entity.User {
	hashed, err := authenticator.HashPassword(FixturePassword)
	if err != nil {
		panic(err)
	}

	user := &entity.User{
		Base:     entity.Base{ID: uuid.NewString()},
		Username: username,
		Password: hashed,
	}
	if err := xcontext.DB(ctx).Create(user).Error; err != nil {
		panic(err)
	}

	return user
}

func (f *Fixture) CreateGroup(ctx context.Context) *entity.Group {
	f.groupCount++
	group := &entity.Group{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       fmt.Sprintf("Group %d", f.groupCount),
		Slug:        fmt.Sprintf("group-%d", f.groupCount),
		Description: "Test group",
	}
	if err := xcontext.DB(ctx).Create(group).Error; err != nil {
		panic(err)
	}

	return group
}

// CreatePost creates a post one minute after the previous fixture post. A
// nil group creates a post without group.
func (f *Fixture) CreatePost(
	ctx context.Context, author *entity.User, group *entity.Group, text string,
) *entity.Post {
	f.postClock = f.postClock.Add(time.Minute)
	return f.CreatePostAt(ctx, author, group, text, f.postClock)
}

func (f *Fixture) CreatePostAt(
	ctx context.Context, author *entity.User, group *entity.Group, text string, at time.Time,
) *entity.Post {
	post := &entity.Post{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		Text:          text,
		CreatedAt:     at,
		AuthorID:      author.ID,
	}
	if group != nil {
		post.GroupID = sql.NullString{String: group.ID, Valid: true}
	}

	if err := xcontext.DB(ctx).Omit("Author", "Group").Create(post).Error; err != nil {
		panic(err)
	}

	post.Author = author
	post.Group = group
	return post
}

func (f *Fixture) CreateComment(
	ctx context.Context, author *entity.User, post *entity.Post, text string,
) *entity.Comment {
	comment := &entity.Comment{
		SnowFlakeBase: entity.SnowFlakeBase{ID: idutil.NewID()},
		Text:          text,
		PostID:        post.ID,
		AuthorID:      author.ID,
	}
	if err := xcontext.DB(ctx).Omit("Author", "Post").Create(comment).Error; err != nil {
		panic(err)
	}

	return comment
}

func (f *Fixture) CreateFollow(ctx context.Context, user, author *entity.User) {
	follow := &entity.Follow{UserID: user.ID, AuthorID: author.ID}
	if err := xcontext.DB(ctx).Omit("User", "Author").Create(follow).Error; err != nil {
		panic(err)
	}
}

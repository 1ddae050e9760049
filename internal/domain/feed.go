package domain

import (
	"context"
	"errors"

	"github.com/yatube-lab/backend/internal/common"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/enum"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FeedKind int

var (
	FeedAll      = enum.New(FeedKind(0), "all")
	FeedGroup    = enum.New(FeedKind(1), "group")
	FeedAuthor   = enum.New(FeedKind(2), "author")
	FeedFollowed = enum.New(FeedKind(3), "followed")
)

func (k FeedKind) String() string {
	return enum.ToString(k)
}

// FeedScope selects the posts of a feed. GroupID is used by FeedGroup and
// AuthorID by FeedAuthor. FeedFollowed uses the request user.
type FeedScope struct {
	Kind     FeedKind
	GroupID  string
	AuthorID string
}

type Feed struct {
	Posts []model.Post
	Page  common.Page
}

type FeedDomain interface {
	Compose(ctx context.Context, scope FeedScope, pageParam string) (*Feed, error)
	Index(context.Context, *model.IndexRequest) (*model.IndexResponse, error)
	GetGroupPosts(context.Context, *model.GetGroupPostsRequest) (*model.GetGroupPostsResponse, error)
	GetProfile(context.Context, *model.GetProfileRequest) (*model.GetProfileResponse, error)
	GetFollowIndex(context.Context, *model.GetFollowIndexRequest) (*model.GetFollowIndexResponse, error)
}

type feedDomain struct {
	postRepo     repository.PostRepository
	groupRepo    repository.GroupRepository
	userRepo     repository.UserRepository
	followRepo   repository.FollowRepository
	followDomain FollowDomain
}

func NewFeedDomain(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	followDomain FollowDomain,
) *feedDomain {
	return &feedDomain{
		postRepo:     postRepo,
		groupRepo:    groupRepo,
		userRepo:     userRepo,
		followRepo:   followRepo,
		followDomain: followDomain,
	}
}

// Compose returns one page of the feed, newest posts first. The page
// parameter is clamped to the existing pages.
func (d *feedDomain) Compose(ctx context.Context, scope FeedScope, pageParam string) (*Feed, error) {
	filter := repository.PostFilter{}
	switch scope.Kind {
	case FeedAll:
	case FeedGroup:
		filter.GroupID = scope.GroupID
	case FeedAuthor:
		filter.AuthorID = scope.AuthorID
	case FeedFollowed:
		filter.FollowerID = xcontext.RequestUserID(ctx)
		if filter.FollowerID == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to login to see followed authors")
		}
	default:
		return nil, errorx.New(errorx.BadRequest, "Invalid feed scope")
	}

	total, err := d.postRepo.Count(ctx, filter)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count %s feed: %v", scope.Kind, err)
		return nil, errorx.Unknown
	}

	page := common.Paginate(total, xcontext.Configs(ctx).ApiServer.PageSize, pageParam)
	posts, err := d.postRepo.GetList(ctx, filter, page.Offset, page.Limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get %s feed: %v", scope.Kind, err)
		return nil, errorx.Unknown
	}

	return &Feed{Posts: model.ConvertPosts(posts), Page: page}, nil
}

func (d *feedDomain) Index(
	ctx context.Context, req *model.IndexRequest,
) (*model.IndexResponse, error) {
	feed, err := d.Compose(ctx, FeedScope{Kind: FeedAll}, req.Page)
	if err != nil {
		return nil, err
	}

	return &model.IndexResponse{Posts: feed.Posts, Page: feed.Page}, nil
}

func (d *feedDomain) GetGroupPosts(
	ctx context.Context, req *model.GetGroupPostsRequest,
) (*model.GetGroupPostsResponse, error) {
	group, err := d.groupRepo.GetBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found group")
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	feed, err := d.Compose(ctx, FeedScope{Kind: FeedGroup, GroupID: group.ID}, req.Page)
	if err != nil {
		return nil, err
	}

	return &model.GetGroupPostsResponse{
		Group: *model.ConvertGroup(group),
		Posts: feed.Posts,
		Page:  feed.Page,
	}, nil
}

func (d *feedDomain) GetProfile(
	ctx context.Context, req *model.GetProfileRequest,
) (*model.GetProfileResponse, error) {
	author, err := d.getUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	feed, err := d.Compose(ctx, FeedScope{Kind: FeedAuthor, AuthorID: author.ID}, req.Page)
	if err != nil {
		return nil, err
	}

	followerCount, err := d.followRepo.CountFollowers(ctx, author.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count followers: %v", err)
		return nil, errorx.Unknown
	}

	followingCount, err := d.followRepo.CountFollowing(ctx, author.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count following: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetProfileResponse{
		Author:         model.ConvertUser(author),
		PostCount:      feed.Page.Total,
		FollowerCount:  followerCount,
		FollowingCount: followingCount,
		Posts:          feed.Posts,
		Page:           feed.Page,
	}

	if common.Actor(ctx, author.ID) == common.ActorNonOwner {
		resp.CanFollow = true
		resp.Following, err = d.followDomain.IsFollowing(ctx, xcontext.RequestUserID(ctx), author.ID)
		if err != nil {
			return nil, err
		}
	}

	return resp, nil
}

func (d *feedDomain) GetFollowIndex(
	ctx context.Context, req *model.GetFollowIndexRequest,
) (*model.GetFollowIndexResponse, error) {
	feed, err := d.Compose(ctx, FeedScope{Kind: FeedFollowed}, req.Page)
	if err != nil {
		return nil, err
	}

	return &model.GetFollowIndexResponse{Posts: feed.Posts, Page: feed.Page}, nil
}

func (d *feedDomain) getUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	user, err := d.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found user")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	return user, nil
}

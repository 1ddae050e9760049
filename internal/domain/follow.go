package domain

import (
	"context"
	"errors"

	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type FollowDomain interface {
	Follow(context.Context, *model.FollowRequest) (*model.RedirectResponse, error)
	Unfollow(context.Context, *model.UnfollowRequest) (*model.RedirectResponse, error)
	IsFollowing(ctx context.Context, userID, authorID string) (bool, error)
}

type followDomain struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

func NewFollowDomain(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
) *followDomain {
	return &followDomain{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow subscribes the request user to the author. Following yourself or an
// author already followed changes nothing.
func (d *followDomain) Follow(
	ctx context.Context, req *model.FollowRequest,
) (*model.RedirectResponse, error) {
	authorID, err := d.getAuthorID(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	userID := xcontext.RequestUserID(ctx)
	if userID == authorID {
		return model.Redirect(model.FollowIndexURL), nil
	}

	if err := d.followRepo.Create(ctx, userID, authorID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create follow: %v", err)
		return nil, errorx.Unknown
	}

	return model.Redirect(model.FollowIndexURL), nil
}

// Unfollow removes the subscription if there is one.
func (d *followDomain) Unfollow(
	ctx context.Context, req *model.UnfollowRequest,
) (*model.RedirectResponse, error) {
	authorID, err := d.getAuthorID(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if err := d.followRepo.Delete(ctx, xcontext.RequestUserID(ctx), authorID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete follow: %v", err)
		return nil, errorx.Unknown
	}

	return model.Redirect(model.FollowIndexURL), nil
}

func (d *followDomain) IsFollowing(ctx context.Context, userID, authorID string) (bool, error) {
	if userID == "" || userID == authorID {
		return false, nil
	}

	ok, err := d.followRepo.Exists(ctx, userID, authorID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot check follow: %v", err)
		return false, errorx.Unknown
	}

	return ok, nil
}

func (d *followDomain) getAuthorID(ctx context.Context, username string) (string, error) {
	author, err := d.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", errorx.New(errorx.NotFound, "Not found author")
		}

		xcontext.Logger(ctx).Errorf("Cannot get author: %v", err)
		return "", errorx.Unknown
	}

	return author.ID, nil
}

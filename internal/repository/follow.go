package repository

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type FollowRepository interface {
	Create(ctx context.Context, userID, authorID string) error
	Delete(ctx context.Context, userID, authorID string) error
	Exists(ctx context.Context, userID, authorID string) (bool, error)
	CountFollowers(ctx context.Context, authorID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}

type followRepository struct{}

func NewFollowRepository() *followRepository {
	return &followRepository{}
}

// Create inserts the edge. An existing edge is left untouched; the primary
// key of the table resolves concurrent inserts of the same pair.
func (r *followRepository) Create(ctx context.Context, userID, authorID string) error {
	return xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit(clause.Associations).
		Create(&entity.Follow{UserID: userID, AuthorID: authorID}).Error
}

// Delete removes the edge. It is not an error if the edge does not exist.
func (r *followRepository) Delete(ctx context.Context, userID, authorID string) error {
	return xcontext.DB(ctx).
		Where("user_id=? AND author_id=?", userID, authorID).
		Delete(&entity.Follow{}).Error
}

func (r *followRepository) Exists(ctx context.Context, userID, authorID string) (bool, error) {
	var count int64
	err := xcontext.DB(ctx).
		Model(&entity.Follow{}).
		Where("user_id=? AND author_id=?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *followRepository) CountFollowers(ctx context.Context, authorID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).Where("author_id=?", authorID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (r *followRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.Follow{}).Where("user_id=?", userID).Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

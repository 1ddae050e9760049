package repository

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/idutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CommentRepository interface {
	Create(ctx context.Context, data *entity.Comment) error
	GetListByPostID(ctx context.Context, postID int64) ([]entity.Comment, error)
	CountByPostID(ctx context.Context, postID int64) (int64, error)
}

type commentRepository struct{}

func NewCommentRepository() *commentRepository {
	return &commentRepository{}
}

func (r *commentRepository) Create(ctx context.Context, data *entity.Comment) error {
	if data.ID == 0 {
		data.ID = idutil.NewID()
	}

	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *commentRepository) GetListByPostID(ctx context.Context, postID int64) ([]entity.Comment, error) {
	var result []entity.Comment
	err := xcontext.DB(ctx).
		Preload("Author").
		Where("post_id=?", postID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *commentRepository) CountByPostID(ctx context.Context, postID int64) (int64, error) {
	var result int64
	err := xcontext.DB(ctx).Model(&entity.Comment{}).Where("post_id=?", postID).Count(&result).Error
	if err != nil {
		return 0, err
	}

	return result, nil
}

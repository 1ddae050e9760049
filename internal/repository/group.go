package repository

import (
	"context"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type GroupRepository interface {
	Create(ctx context.Context, data *entity.Group) error
	GetByID(ctx context.Context, id string) (*entity.Group, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Group, error)
	GetList(ctx context.Context) ([]entity.Group, error)
	DeleteByID(ctx context.Context, id string) error
}

type groupRepository struct{}

func NewGroupRepository() *groupRepository {
	return &groupRepository{}
}

func (r *groupRepository) Create(ctx context.Context, data *entity.Group) error {
	return xcontext.DB(ctx).Create(data).Error
}

func (r *groupRepository) GetByID(ctx context.Context, id string) (*entity.Group, error) {
	var record entity.Group
	if err := xcontext.DB(ctx).Where("id=?", id).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *groupRepository) GetBySlug(ctx context.Context, slug string) (*entity.Group, error) {
	var record entity.Group
	if err := xcontext.DB(ctx).Where("slug=?", slug).Take(&record).Error; err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *groupRepository) GetList(ctx context.Context) ([]entity.Group, error) {
	var result []entity.Group
	if err := xcontext.DB(ctx).Order("title ASC").Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// DeleteByID removes the group. Posts of the group are kept with a null
// group.
func (r *groupRepository) DeleteByID(ctx context.Context, id string) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Group{}).Error
}

package repository

import (
	"context"
	"database/sql"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/pkg/idutil"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostFilter struct {
	GroupID  string
	AuthorID string

	// FollowerID keeps only posts whose author is followed by this user.
	FollowerID string

	// IDs is ignored if it is nil.
	IDs []int64
}

type UpdatePostData struct {
	Text    string
	GroupID sql.NullString

	// Image is kept unchanged if it is empty.
	Image string
}

type PostRepository interface {
	Create(ctx context.Context, data *entity.Post) error
	GetByID(ctx context.Context, id int64) (*entity.Post, error)
	UpdateByID(ctx context.Context, id int64, data UpdatePostData) error
	DeleteByID(ctx context.Context, id int64) error
	GetList(ctx context.Context, filter PostFilter, offset, limit int) ([]entity.Post, error)
	GetByIDs(ctx context.Context, ids []int64) ([]entity.Post, error)
	Count(ctx context.Context, filter PostFilter) (int64, error)
}

type postRepository struct{}

func NewPostRepository() *postRepository {
	return &postRepository{}
}

func (r *postRepository) applyFilter(tx *gorm.DB, filter PostFilter) *gorm.DB {
	if filter.GroupID != "" {
		tx = tx.Where("posts.group_id=?", filter.GroupID)
	}

	if filter.AuthorID != "" {
		tx = tx.Where("posts.author_id=?", filter.AuthorID)
	}

	if filter.FollowerID != "" {
		tx = tx.Joins("JOIN follows ON follows.author_id=posts.author_id").
			Where("follows.user_id=?", filter.FollowerID)
	}

	if filter.IDs != nil {
		tx = tx.Where("posts.id IN (?)", filter.IDs)
	}

	return tx
}

func (r *postRepository) Create(ctx context.Context, data *entity.Post) error {
	if data.ID == 0 {
		data.ID = idutil.NewID()
	}

	return xcontext.DB(ctx).Omit(clause.Associations).Create(data).Error
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*entity.Post, error) {
	var record entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Preload("Group").
		Where("id=?", id).
		Take(&record).Error
	if err != nil {
		return nil, err
	}

	return &record, nil
}

func (r *postRepository) UpdateByID(ctx context.Context, id int64, data UpdatePostData) error {
	updateMap := map[string]any{
		"text":     data.Text,
		"group_id": data.GroupID,
	}

	if data.Image != "" {
		updateMap["image"] = data.Image
	}

	tx := xcontext.DB(ctx).
		Model(&entity.Post{}).
		Where("id=?", id).
		Updates(updateMap)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteByID removes the post and its comments.
func (r *postRepository) DeleteByID(ctx context.Context, id int64) error {
	return xcontext.DB(ctx).Where("id=?", id).Delete(&entity.Post{}).Error
}

// GetList returns posts from the newest to the oldest. Posts created at the
// same time are ordered by insertion.
func (r *postRepository) GetList(
	ctx context.Context, filter PostFilter, offset, limit int,
) ([]entity.Post, error) {
	var result []entity.Post
	tx := r.applyFilter(xcontext.DB(ctx).Model(&entity.Post{}), filter).
		Preload("Author").
		Preload("Group").
		Order("posts.created_at DESC").
		Order("posts.id ASC").
		Offset(offset).
		Limit(limit)

	if err := tx.Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

// GetByIDs returns posts in the order of ids. Unknown ids are skipped.
func (r *postRepository) GetByIDs(ctx context.Context, ids []int64) ([]entity.Post, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var records []entity.Post
	err := xcontext.DB(ctx).
		Preload("Author").
		Preload("Group").
		Where("id IN (?)", ids).
		Find(&records).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]entity.Post, len(records))
	for _, p := range records {
		byID[p.ID] = p
	}

	result := make([]entity.Post, 0, len(records))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			result = append(result, p)
		}
	}

	return result, nil
}

func (r *postRepository) Count(ctx context.Context, filter PostFilter) (int64, error) {
	var result int64
	tx := r.applyFilter(xcontext.DB(ctx).Model(&entity.Post{}), filter)
	if err := tx.Count(&result).Error; err != nil {
		return 0, err
	}

	return result, nil
}

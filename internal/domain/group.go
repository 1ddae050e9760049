package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	maxGroupTitleLength = 200
	maxGroupSlugLength  = 50
)

var slugRegex = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// GroupDomain manages groups. Groups are created by administrators from the
// command line.
type GroupDomain interface {
	Create(ctx context.Context, slug, title, description string) (*entity.Group, error)
	Delete(ctx context.Context, slug string) error
}

type groupDomain struct {
	groupRepo repository.GroupRepository
}

func NewGroupDomain(groupRepo repository.GroupRepository) *groupDomain {
	return &groupDomain{groupRepo: groupRepo}
}

func (d *groupDomain) Create(
	ctx context.Context, slug, title, description string,
) (*entity.Group, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxGroupTitleLength {
		return nil, errorx.New(errorx.BadRequest, "Title must have 1 to %d characters", maxGroupTitleLength)
	}

	if len(slug) > maxGroupSlugLength || !slugRegex.MatchString(slug) {
		return nil, errorx.New(errorx.BadRequest,
			"Slug must have at most %d letters, numbers, underscores or hyphens", maxGroupSlugLength)
	}

	_, err := d.groupRepo.GetBySlug(ctx, slug)
	if err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Group %s already exists", slug)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return nil, errorx.Unknown
	}

	group := &entity.Group{
		Base:        entity.Base{ID: uuid.NewString()},
		Title:       title,
		Slug:        slug,
		Description: description,
	}
	if err := d.groupRepo.Create(ctx, group); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, errorx.New(errorx.AlreadyExists, "Group %s already exists", slug)
		}

		xcontext.Logger(ctx).Errorf("Cannot create group: %v", err)
		return nil, errorx.Unknown
	}

	return group, nil
}

// Delete removes the group. Its posts are kept without group.
func (d *groupDomain) Delete(ctx context.Context, slug string) error {
	group, err := d.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Not found group %s", slug)
		}

		xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
		return errorx.Unknown
	}

	if err := d.groupRepo.DeleteByID(ctx, group.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete group: %v", err)
		return errorx.Unknown
	}

	return nil
}

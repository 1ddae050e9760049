package domain

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/yatube-lab/backend/internal/common"
	"github.com/yatube-lab/backend/internal/domain/search"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/storage"
	"github.com/yatube-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	requiredFieldMessage = "This field is required."
	invalidChoiceMessage = "Select a valid choice. That choice is not one of the available choices."
)

type PostDomain interface {
	Get(context.Context, *model.GetPostRequest) (*model.GetPostResponse, error)
	CreateForm(context.Context, *model.CreatePostFormRequest) (*model.PostFormResponse, error)
	Create(context.Context, *model.CreatePostRequest) (*model.PostFormResponse, error)
	EditForm(context.Context, *model.EditPostFormRequest) (*model.PostFormResponse, error)
	Edit(context.Context, *model.EditPostRequest) (*model.PostFormResponse, error)
}

type postDomain struct {
	postRepo    repository.PostRepository
	groupRepo   repository.GroupRepository
	commentRepo repository.CommentRepository
	storage     storage.Storage
	indexer     search.Indexer
}

func NewPostDomain(
	postRepo repository.PostRepository,
	groupRepo repository.GroupRepository,
	commentRepo repository.CommentRepository,
	storage storage.Storage,
	indexer search.Indexer,
) *postDomain {
	return &postDomain{
		postRepo:    postRepo,
		groupRepo:   groupRepo,
		commentRepo: commentRepo,
		storage:     storage,
		indexer:     indexer,
	}
}

func (d *postDomain) Get(
	ctx context.Context, req *model.GetPostRequest,
) (*model.GetPostResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	postCount, err := d.postRepo.Count(ctx, repository.PostFilter{AuthorID: post.AuthorID})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count posts of author: %v", err)
		return nil, errorx.Unknown
	}

	comments, err := d.commentRepo.GetListByPostID(ctx, post.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get comments: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPostResponse{
		Post:      model.ConvertPost(post),
		PostCount: postCount,
		Comments:  model.ConvertComments(comments),
		CanEdit:   common.Actor(ctx, post.AuthorID) == common.ActorOwner,
	}, nil
}

func (d *postDomain) CreateForm(
	ctx context.Context, req *model.CreatePostFormRequest,
) (*model.PostFormResponse, error) {
	groups, err := d.getGroups(ctx)
	if err != nil {
		return nil, err
	}

	return &model.PostFormResponse{Groups: groups}, nil
}

func (d *postDomain) Create(
	ctx context.Context, req *model.CreatePostRequest,
) (*model.PostFormResponse, error) {
	form := model.PostForm{Text: req.Text, Group: req.Group}
	groupID, image, err := d.cleanForm(ctx, &form)
	if err != nil {
		return nil, err
	}

	if !form.Errors.Empty() {
		groups, err := d.getGroups(ctx)
		if err != nil {
			return nil, err
		}

		return &model.PostFormResponse{Form: form, Groups: groups}, nil
	}

	post := &entity.Post{
		Text:     form.Text,
		AuthorID: xcontext.RequestUserID(ctx),
		GroupID:  groupID,
		Image:    image,
	}
	if err := d.postRepo.Create(ctx, post); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create post: %v", err)
		return nil, errorx.Unknown
	}

	d.index(ctx, post.ID, post.Text)

	return &model.PostFormResponse{
		RedirectURL: model.ProfileURL(xcontext.RequestUsername(ctx)),
	}, nil
}

// EditForm redirects users other than the author to the post.
func (d *postDomain) EditForm(
	ctx context.Context, req *model.EditPostFormRequest,
) (*model.PostFormResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if common.Actor(ctx, post.AuthorID) != common.ActorOwner {
		return &model.PostFormResponse{RedirectURL: model.PostDetailURL(post.ID)}, nil
	}

	groups, err := d.getGroups(ctx)
	if err != nil {
		return nil, err
	}

	return &model.PostFormResponse{
		Form:   model.PostForm{Text: post.Text, Group: post.GroupID.String},
		Groups: groups,
		IsEdit: true,
		PostID: post.ID,
	}, nil
}

func (d *postDomain) Edit(
	ctx context.Context, req *model.EditPostRequest,
) (*model.PostFormResponse, error) {
	post, err := d.getPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}

	if common.Actor(ctx, post.AuthorID) != common.ActorOwner {
		return &model.PostFormResponse{RedirectURL: model.PostDetailURL(post.ID)}, nil
	}

	form := model.PostForm{Text: req.Text, Group: req.Group}
	groupID, image, err := d.cleanForm(ctx, &form)
	if err != nil {
		return nil, err
	}

	if !form.Errors.Empty() {
		groups, err := d.getGroups(ctx)
		if err != nil {
			return nil, err
		}

		return &model.PostFormResponse{
			Form:   form,
			Groups: groups,
			IsEdit: true,
			PostID: post.ID,
		}, nil
	}

	err = d.postRepo.UpdateByID(ctx, post.ID, repository.UpdatePostData{
		Text:    form.Text,
		GroupID: groupID,
		Image:   image,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update post: %v", err)
		return nil, errorx.Unknown
	}

	d.index(ctx, post.ID, form.Text)

	return &model.PostFormResponse{RedirectURL: model.PostDetailURL(post.ID)}, nil
}

// cleanForm validates the form and returns the group and the uploaded image.
// Invalid fields are reported in form.Errors. The image is only uploaded if
// the other fields are valid.
func (d *postDomain) cleanForm(
	ctx context.Context, form *model.PostForm,
) (sql.NullString, string, error) {
	var groupID sql.NullString
	if strings.TrimSpace(form.Text) == "" {
		form.Errors = form.Errors.Add("text", requiredFieldMessage)
	}

	if form.Group != "" {
		group, err := d.groupRepo.GetByID(ctx, form.Group)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				xcontext.Logger(ctx).Errorf("Cannot get group: %v", err)
				return groupID, "", errorx.Unknown
			}

			form.Errors = form.Errors.Add("group", invalidChoiceMessage)
		} else {
			groupID = sql.NullString{String: group.ID, Valid: true}
		}
	}

	if !form.Errors.Empty() {
		return groupID, "", nil
	}

	uploaded, err := common.ProcessImage(ctx, d.storage, "image")
	if err != nil {
		var errx errorx.Error
		if errors.As(err, &errx) && errx.Code == errorx.InvalidForm {
			form.Errors = form.Errors.Add("image", errx.Message)
			return groupID, "", nil
		}

		return groupID, "", err
	}

	if uploaded == nil {
		return groupID, "", nil
	}

	return groupID, uploaded.URL, nil
}

func (d *postDomain) getPost(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := d.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found post")
		}

		xcontext.Logger(ctx).Errorf("Cannot get post: %v", err)
		return nil, errorx.Unknown
	}

	return post, nil
}

func (d *postDomain) getGroups(ctx context.Context) ([]model.Group, error) {
	groups, err := d.groupRepo.GetList(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get groups: %v", err)
		return nil, errorx.Unknown
	}

	result := make([]model.Group, 0, len(groups))
	for i := range groups {
		result = append(result, *model.ConvertGroup(&groups[i]))
	}

	return result, nil
}

// index keeps the search index in sync. Indexing errors are only logged.
func (d *postDomain) index(ctx context.Context, id int64, text string) {
	if err := d.indexer.IndexPost(ctx, id, search.PostData{Text: text}); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot index post %d: %v", id, err)
	}
}

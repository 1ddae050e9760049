package domain

import (
	"context"
	"strings"

	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type CommentDomain interface {
	Add(context.Context, *model.AddCommentRequest) (*model.GetPostResponse, error)
}

type commentDomain struct {
	commentRepo repository.CommentRepository
	postDomain  PostDomain
}

func NewCommentDomain(
	commentRepo repository.CommentRepository,
	postDomain PostDomain,
) *commentDomain {
	return &commentDomain{
		commentRepo: commentRepo,
		postDomain:  postDomain,
	}
}

// Add redirects to the post after a valid comment. An invalid comment
// renders the post again with the form errors.
func (d *commentDomain) Add(
	ctx context.Context, req *model.AddCommentRequest,
) (*model.GetPostResponse, error) {
	detail, err := d.postDomain.Get(ctx, &model.GetPostRequest{PostID: req.PostID})
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Text) == "" {
		detail.Form = model.CommentForm{
			Text:   req.Text,
			Errors: model.FormErrors{}.Add("text", requiredFieldMessage),
		}

		return detail, nil
	}

	comment := &entity.Comment{
		Text:     req.Text,
		PostID:   req.PostID,
		AuthorID: xcontext.RequestUserID(ctx),
	}
	if err := d.commentRepo.Create(ctx, comment); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create comment: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetPostResponse{RedirectURL: model.PostDetailURL(req.PostID)}, nil
}

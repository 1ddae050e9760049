package domain

import (
	"context"
	"strings"

	"github.com/yatube-lab/backend/internal/common"
	"github.com/yatube-lab/backend/internal/entity"
	"github.com/yatube-lab/backend/internal/domain/search"
	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/internal/repository"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type SearchDomain interface {
	SearchPosts(context.Context, *model.SearchPostsRequest) (*model.SearchPostsResponse, error)
	Reindex(ctx context.Context) (int, error)
}

type searchDomain struct {
	postRepo repository.PostRepository
	indexer  search.Indexer
}

func NewSearchDomain(postRepo repository.PostRepository, indexer search.Indexer) *searchDomain {
	return &searchDomain{postRepo: postRepo, indexer: indexer}
}

// SearchPosts lists the posts matching the query, the most relevant first.
func (d *searchDomain) SearchPosts(
	ctx context.Context, req *model.SearchPostsRequest,
) (*model.SearchPostsResponse, error) {
	pageSize := xcontext.Configs(ctx).ApiServer.PageSize
	query := strings.TrimSpace(req.Q)
	if query == "" {
		return &model.SearchPostsResponse{Page: common.Paginate(0, pageSize, req.Page)}, nil
	}

	page, posts, err := d.search(ctx, query, req.Page)
	if err != nil {
		return nil, err
	}

	return &model.SearchPostsResponse{
		Query: query,
		Posts: model.ConvertPosts(posts),
		Page:  page,
	}, nil
}

// search returns one page of matching posts. Hits of posts which no longer
// exist, such as the posts removed with their author, are dropped from the
// index and the page is computed again.
func (d *searchDomain) search(
	ctx context.Context, query, pageParam string,
) (common.Page, []entity.Post, error) {
	pageSize := xcontext.Configs(ctx).ApiServer.PageSize
	for pruned := false; ; pruned = true {
		_, total, err := d.indexer.SearchPosts(ctx, query, 0, 0)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot search posts: %v", err)
			return common.Page{}, nil, errorx.Unknown
		}

		page := common.Paginate(int64(total), pageSize, pageParam)
		ids, _, err := d.indexer.SearchPosts(ctx, query, page.Offset, page.Limit)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot search posts: %v", err)
			return common.Page{}, nil, errorx.Unknown
		}

		posts, err := d.postRepo.GetByIDs(ctx, ids)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
			return common.Page{}, nil, errorx.Unknown
		}

		if len(posts) == len(ids) || pruned {
			return page, posts, nil
		}

		if err := d.pruneStaleHits(ctx, query, total); err != nil {
			return common.Page{}, nil, err
		}
	}
}

func (d *searchDomain) pruneStaleHits(ctx context.Context, query string, total uint64) error {
	ids, _, err := d.indexer.SearchPosts(ctx, query, 0, int(total))
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot search posts: %v", err)
		return errorx.Unknown
	}

	posts, err := d.postRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
		return errorx.Unknown
	}

	exists := make(map[int64]bool, len(posts))
	for _, p := range posts {
		exists[p.ID] = true
	}

	for _, id := range ids {
		if exists[id] {
			continue
		}

		if err := d.indexer.DeletePost(ctx, id); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot delete post %d from index: %v", id, err)
			return errorx.Unknown
		}
	}

	return nil
}

// Reindex indexes all posts again and returns the number of indexed posts.
func (d *searchDomain) Reindex(ctx context.Context) (int, error) {
	const batchSize = 100

	count := 0
	for offset := 0; ; offset += batchSize {
		posts, err := d.postRepo.GetList(ctx, repository.PostFilter{}, offset, batchSize)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get posts: %v", err)
			return count, errorx.Unknown
		}

		for _, p := range posts {
			if err := d.indexer.IndexPost(ctx, p.ID, search.PostData{Text: p.Text}); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot index post %d: %v", p.ID, err)
				return count, errorx.Unknown
			}
			count++
		}

		if len(posts) < batchSize {
			return count, nil
		}
	}
}

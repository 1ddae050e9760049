package search

import (
	"context"
	"errors"
	"path"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/yatube-lab/backend/pkg/logger"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

const PostDoc = "post"

type PostData struct {
	Text string
}

type Indexer interface {
	IndexPost(ctx context.Context, id int64, data PostData) error
	DeletePost(ctx context.Context, id int64) error

	// SearchPosts returns the matching post ids ordered by relevance and the
	// total number of matches.
	SearchPosts(ctx context.Context, query string, offset, limit int) ([]int64, uint64, error)
	Close()
}

type bleveIndex struct {
	logger logger.Logger
	index  bleve.Index
}

// NewBleveIndex opens the post index under the configured directory. The
// index lives in memory if no directory is configured.
func NewBleveIndex(ctx context.Context) (*bleveIndex, error) {
	indexDir := xcontext.Configs(ctx).Search.IndexDir

	var index bleve.Index
	var err error
	if indexDir == "" {
		index, err = bleve.NewMemOnly(bleve.NewIndexMapping())
	} else {
		indexPath := path.Join(indexDir, PostDoc)
		index, err = bleve.New(indexPath, bleve.NewIndexMapping())
		if errors.Is(err, bleve.ErrorIndexPathExists) {
			index, err = bleve.Open(indexPath)
		}
	}
	if err != nil {
		return nil, err
	}

	return &bleveIndex{logger: xcontext.Logger(ctx), index: index}, nil
}

func (i *bleveIndex) IndexPost(_ context.Context, id int64, data PostData) error {
	// Index replaces the document with the same id.
	return i.index.Index(strconv.FormatInt(id, 10), data)
}

func (i *bleveIndex) DeletePost(_ context.Context, id int64) error {
	return i.index.Delete(strconv.FormatInt(id, 10))
}

func (i *bleveIndex) SearchPosts(
	ctx context.Context, query string, offset, limit int,
) ([]int64, uint64, error) {
	req := bleve.NewSearchRequestOptions(bleve.NewMatchQuery(query), limit, offset, false)
	searchResults, err := i.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]int64, 0, len(searchResults.Hits))
	for _, match := range searchResults.Hits {
		id, err := strconv.ParseInt(match.ID, 10, 64)
		if err != nil {
			i.logger.Warnf("Invalid post id in index: %s", match.ID)
			continue
		}

		ids = append(ids, id)
	}

	return ids, searchResults.Total, nil
}

func (i *bleveIndex) Close() {
	i.logger.Infof("Closing post index...")
	if err := i.index.Close(); err != nil {
		i.logger.Errorf("Cannot close post index: %v", err)
	}
	i.logger.Infof("Closing post index...done")
}

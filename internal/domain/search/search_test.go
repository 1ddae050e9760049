package search

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-lab/backend/pkg/testutil"
)

func TestBleveIndex(t *testing.T) {
	ctx := testutil.MockContext()
	index, err := NewBleveIndex(ctx)
	require.NoError(t, err)
	defer index.Close()

	require.NoError(t, index.IndexPost(ctx, 1, PostData{Text: "The quick brown fox"}))
	require.NoError(t, index.IndexPost(ctx, 2, PostData{Text: "A lazy dog sleeps"}))
	require.NoError(t, index.IndexPost(ctx, 3, PostData{Text: "Another fox story"}))

	ids, total, err := index.SearchPosts(ctx, "fox", 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(2), total)
	require.ElementsMatch(t, []int64{1, 3}, ids)

	// Reindexing replaces the document.
	require.NoError(t, index.IndexPost(ctx, 3, PostData{Text: "A cat story"}))
	ids, total, err = index.SearchPosts(ctx, "fox", 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(1), total)
	require.Equal(t, []int64{1}, ids)

	require.NoError(t, index.DeletePost(ctx, 1))
	_, total, err = index.SearchPosts(ctx, "fox", 0, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(0), total)
}

func TestBleveIndexPaging(t *testing.T) {
	ctx := testutil.MockContext()
	index, err := NewBleveIndex(ctx)
	require.NoError(t, err)
	defer index.Close()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, index.IndexPost(ctx, i, PostData{Text: "same words"}))
	}

	ids, total, err := index.SearchPosts(ctx, "words", 4, 10)
	require.NoError(t, err)
	require.Equal(t, uint64(5), total)
	require.Len(t, ids, 1)

	ids, total, err = index.SearchPosts(ctx, "words", 0, 0)
	require.NoError(t, err)
	require.Equal(t, uint64(5), total)
	require.Empty(t, ids)
}

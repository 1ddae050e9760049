package testutil

import (
	"context"
	"fmt"

	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)

	Uploaded []*storage.UploadObject
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

// NewMockStorage returns a storage which keeps uploaded objects in memory.
func NewMockStorage() *MockStorage {
	m := &MockStorage{}
	m.UploadFunc = func(_ context.Context, obj *storage.UploadObject) (*storage.UploadResponse, error) {
		m.Uploaded = append(m.Uploaded, obj)
		key := obj.Key(fmt.Sprint(len(m.Uploaded)))
		return &storage.UploadResponse{
			URL: fmt.Sprintf("http://storage.test/%s/%s", obj.Bucket, key),
			Key: key,
		}, nil
	}

	return m
}

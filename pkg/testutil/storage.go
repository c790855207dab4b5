package testutil

import (
	"context"

	"github.com/groove-lab/backend/pkg/errorx"
	"github.com/groove-lab/backend/pkg/storage"
)

type MockStorage struct {
	UploadFunc func(context.Context, *storage.UploadObject) (*storage.UploadResponse, error)
	DeleteFunc func(context.Context, string) error
}

func (m *MockStorage) Upload(
	ctx context.Context, obj *storage.UploadObject,
) (*storage.UploadResponse, error) {
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockStorage) Delete(ctx context.Context, url string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, url)
	}

	return nil
}

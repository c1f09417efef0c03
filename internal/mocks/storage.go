package mocks

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/mock"
)

// Storage is a mock implementation of model.Storage.
type Storage struct {
	mock.Mock
}

// NewStorage creates a Storage mock with expectations asserted on test
// cleanup.
func NewStorage(t *testing.T) *Storage {
	m := &Storage{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Storage) Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *Storage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

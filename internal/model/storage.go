package model

import (
	"context"
	"io"
)

// Storage is the avatar object-storage collaborator. Upload returns the
// public reference URL for the stored object.
type Storage interface {
	Upload(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, key string) error
}

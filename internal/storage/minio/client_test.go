package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	bucketExists bool
	existsErr    error
	makeErr      error
	putErr       error
	removeErr    error

	madeBucket   string
	putBucket    string
	putKey       string
	putSize      int64
	putType      string
	removedKey   string
	putBodyBytes []byte
}

func (f *fakeAPI) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return f.bucketExists, f.existsErr
}

func (f *fakeAPI) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	f.madeBucket = bucketName
	return f.makeErr
}

func (f *fakeAPI) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	f.putBucket = bucketName
	f.putKey = objectName
	f.putSize = objectSize
	f.putType = opts.ContentType
	f.putBodyBytes, _ = io.ReadAll(reader)
	return minio.UploadInfo{}, f.putErr
}

func (f *fakeAPI) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	f.removedKey = objectName
	return f.removeErr
}

func TestNewClientWithAPI_CreatesMissingBucket(t *testing.T) {
	api := &fakeAPI{bucketExists: false}

	_, err := NewClientWithAPI(context.Background(), api, "avatars", "http://localhost:9000")
	require.NoError(t, err)
	assert.Equal(t, "avatars", api.madeBucket)
}

func TestNewClientWithAPI_KeepsExistingBucket(t *testing.T) {
	api := &fakeAPI{bucketExists: true}

	_, err := NewClientWithAPI(context.Background(), api, "avatars", "http://localhost:9000")
	require.NoError(t, err)
	assert.Empty(t, api.madeBucket)
}

func TestNewClientWithAPI_BucketCheckFails(t *testing.T) {
	api := &fakeAPI{existsErr: errors.New("connection refused")}

	_, err := NewClientWithAPI(context.Background(), api, "avatars", "http://localhost:9000")
	require.Error(t, err)
}

func TestClient_Upload(t *testing.T) {
	api := &fakeAPI{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "avatars", "http://localhost:9000/")
	require.NoError(t, err)

	url, err := c.Upload(context.Background(), "avatars/u1.png", strings.NewReader("png"), 3, "image/png")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9000/avatars/avatars/u1.png", url)
	assert.Equal(t, "avatars/u1.png", api.putKey)
	assert.Equal(t, int64(3), api.putSize)
	assert.Equal(t, "image/png", api.putType)
	assert.Equal(t, []byte("png"), api.putBodyBytes)
}

func TestClient_Upload_Error(t *testing.T) {
	api := &fakeAPI{bucketExists: true, putErr: errors.New("quota exceeded")}
	c, err := NewClientWithAPI(context.Background(), api, "avatars", "http://localhost:9000")
	require.NoError(t, err)

	_, err = c.Upload(context.Background(), "k", strings.NewReader(""), 0, "")
	require.Error(t, err)
}

func TestClient_Delete(t *testing.T) {
	api := &fakeAPI{bucketExists: true}
	c, err := NewClientWithAPI(context.Background(), api, "avatars", "http://localhost:9000")
	require.NoError(t, err)

	require.NoError(t, c.Delete(context.Background(), "avatars/u1.png"))
	assert.Equal(t, "avatars/u1.png", api.removedKey)
}

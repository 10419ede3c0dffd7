package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/easytech/webapi/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStorage(NewMemory("media"))

	require.NoError(t, store.Put(ctx, "media/a.png", strings.NewReader("png-bytes"), 9, "image/png"))

	obj, err := store.Get(ctx, "media/a.png")
	require.NoError(t, err)
	defer obj.Body.Close()

	data, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", obj.ContentType)
	assert.EqualValues(t, 9, obj.Size)

	require.NoError(t, store.Delete(ctx, "media/a.png"))
	_, err = store.Get(ctx, "media/a.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestOpenDisabled(t *testing.T) {
	store, err := Open(context.Background(), config.Config{Storage: config.StorageConfig{Backend: "none"}})
	require.NoError(t, err)
	assert.Nil(t, store)
}

func TestOpenValidatesConfig(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, config.Config{Storage: config.StorageConfig{Backend: "minio"}})
	assert.ErrorContains(t, err, "minio endpoint is required")

	_, err = Open(ctx, config.Config{Storage: config.StorageConfig{Backend: "s3"}})
	assert.ErrorContains(t, err, "s3 bucket is required")

	_, err = Open(ctx, config.Config{Storage: config.StorageConfig{Backend: "ftp"}})
	assert.ErrorContains(t, err, "unknown STORAGE_BACKEND")
}

func TestOpenMemory(t *testing.T) {
	store, err := Open(context.Background(), config.Config{
		Storage: config.StorageConfig{Backend: "memory"},
		Minio:   config.MinioConfig{Bucket: "easytech-media"},
	})
	require.NoError(t, err)
	assert.Equal(t, "easytech-media", store.Bucket())
}

func TestSplitEndpoint(t *testing.T) {
	cases := []struct {
		raw      string
		useSSL   bool
		endpoint string
		secure   bool
	}{
		{raw: "localhost:9000", endpoint: "localhost:9000"},
		{raw: "localhost:9000", useSSL: true, endpoint: "localhost:9000", secure: true},
		{raw: "https://minio.example.com/", endpoint: "minio.example.com", secure: true},
		{raw: " http://minio:9000 ", endpoint: "minio:9000"},
	}
	for _, tc := range cases {
		endpoint, secure := splitEndpoint(tc.raw, tc.useSSL)
		assert.Equal(t, tc.endpoint, endpoint, tc.raw)
		assert.Equal(t, tc.secure, secure, tc.raw)
	}
}

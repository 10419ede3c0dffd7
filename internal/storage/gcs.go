package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/easytech/webapi/config"
	"google.golang.org/api/option"
)

// GCSClient keeps media objects in a Google Cloud Storage bucket.
type GCSClient struct {
	client    *storage.Client
	bucket    *storage.BucketHandle
	name      string
	projectID string
}

func NewGCSClient(ctx context.Context, cfg config.GCSConfig) (*GCSClient, error) {
	name := strings.TrimSpace(cfg.Bucket)
	if name == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if file := strings.TrimSpace(cfg.CredentialsFile); file != "" {
		opts = append(opts, option.WithCredentialsFile(file))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}

	return &GCSClient{
		client:    client,
		bucket:    client.Bucket(name),
		name:      name,
		projectID: strings.TrimSpace(cfg.ProjectID),
	}, nil
}

// EnsureBucket creates a missing bucket. Creation needs GCS_PROJECT_ID.
func (g *GCSClient) EnsureBucket(ctx context.Context) error {
	_, err := g.bucket.Attrs(ctx)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, storage.ErrBucketNotExist):
		return err
	case g.projectID == "":
		return fmt.Errorf("gcs bucket %s does not exist and no project id is set to create it", g.name)
	}
	return g.bucket.Create(ctx, g.projectID, nil)
}

// Put streams r into key. The write only becomes visible once the writer
// closes successfully.
func (g *GCSClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	w := g.bucket.Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = objectCacheControl
	if size > 0 && size < int64(w.ChunkSize) {
		// small uploads go out in a single request
		w.ChunkSize = 0
	}

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return fmt.Errorf("write gcs object %s: %w", key, err)
	}
	return w.Close()
}

func (g *GCSClient) Get(ctx context.Context, key string) (*Object, error) {
	reader, err := g.bucket.Object(key).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &Object{
		Body:        reader,
		ContentType: reader.Attrs.ContentType,
		Size:        reader.Attrs.Size,
	}, nil
}

func (g *GCSClient) Delete(ctx context.Context, key string) error {
	err := g.bucket.Object(key).Delete(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) {
		return nil
	}
	return err
}

func (g *GCSClient) Bucket() string {
	return g.name
}

func (g *GCSClient) Close() error {
	return g.client.Close()
}

package storage

import (
	"context"
	"fmt"

	"github.com/easytech/webapi/config"
)

// Open builds the object storage selected by STORAGE_BACKEND and makes sure
// its bucket exists. It returns nil when media storage is disabled.
func Open(ctx context.Context, cfg config.Config) (*Storage, error) {
	var (
		backend ObjectStorage
		err     error
	)
	switch cfg.Storage.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		backend = NewMemory(cfg.Minio.Bucket)
	case "minio":
		backend, err = NewMinioClient(cfg.Minio)
	case "gcs":
		backend, err = NewGCSClient(ctx, cfg.GCS)
	case "s3":
		backend, err = NewS3Client(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Storage.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", cfg.Storage.Backend, err)
	}

	if err := backend.EnsureBucket(ctx); err != nil {
		_ = backend.Close()
		return nil, fmt.Errorf("ensure bucket %s: %w", backend.Bucket(), err)
	}
	return NewStorage(backend), nil
}

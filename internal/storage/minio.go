package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/easytech/webapi/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioClient keeps media objects in a MinIO or other S3-compatible bucket.
type MinioClient struct {
	api    *minio.Client
	bucket string
}

// NewMinioClient accepts MINIO_ENDPOINT with or without a URL scheme; an
// https:// prefix turns TLS on.
func NewMinioClient(cfg config.MinioConfig) (*MinioClient, error) {
	endpoint, secure := splitEndpoint(cfg.Endpoint, cfg.UseSSL)
	switch {
	case endpoint == "":
		return nil, errors.New("minio endpoint is required")
	case strings.TrimSpace(cfg.AccessKey) == "" || strings.TrimSpace(cfg.SecretKey) == "":
		return nil, errors.New("minio access key and secret key are required")
	case strings.TrimSpace(cfg.Bucket) == "":
		return nil, errors.New("minio bucket is required")
	}

	api, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioClient{api: api, bucket: cfg.Bucket}, nil
}

func (m *MinioClient) EnsureBucket(ctx context.Context) error {
	exists, err := m.api.BucketExists(ctx, m.bucket)
	if err != nil || exists {
		return err
	}
	err = m.api.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	if minio.ToErrorResponse(err).Code == "BucketAlreadyOwnedByYou" {
		return nil
	}
	return err
}

func (m *MinioClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	_, err := m.api.PutObject(ctx, m.bucket, key, r, size, minio.PutObjectOptions{
		ContentType:  contentType,
		CacheControl: objectCacheControl,
	})
	return err
}

// Get stats the object before returning it so a missing key surfaces as
// ErrObjectNotFound instead of failing on the first read.
func (m *MinioClient) Get(ctx context.Context, key string) (*Object, error) {
	obj, err := m.api.GetObject(ctx, m.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	return &Object{Body: obj, ContentType: info.ContentType, Size: info.Size}, nil
}

func (m *MinioClient) Delete(ctx context.Context, key string) error {
	return m.api.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{})
}

func (m *MinioClient) Bucket() string {
	return m.bucket
}

func (m *MinioClient) Close() error {
	return nil
}

func splitEndpoint(raw string, useSSL bool) (string, bool) {
	endpoint := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(endpoint, "https://"):
		endpoint, useSSL = strings.TrimPrefix(endpoint, "https://"), true
	case strings.HasPrefix(endpoint, "http://"):
		endpoint = strings.TrimPrefix(endpoint, "http://")
	}
	return strings.TrimSuffix(endpoint, "/"), useSSL
}

// Package storage keeps uploaded media in an object store.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrObjectNotFound is returned by Get when the key does not exist.
var ErrObjectNotFound = errors.New("object not found")

// Media keys are unique per upload and never rewritten.
const objectCacheControl = "public, max-age=31536000, immutable"

// Object is an open object body with its stored metadata. Callers must
// close Body.
type Object struct {
	Body        io.ReadCloser
	ContentType string
	Size        int64
}

// ObjectStorage is implemented by every bucket backend.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context) error
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*Object, error)
	Delete(ctx context.Context, key string) error
	Bucket() string
	Close() error
}

// Storage is the handle the rest of the app holds; the backend behind it is
// picked by Open.
type Storage struct {
	backend ObjectStorage
}

func NewStorage(backend ObjectStorage) *Storage {
	return &Storage{backend: backend}
}

func (s *Storage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	return s.backend.Put(ctx, key, r, size, contentType)
}

func (s *Storage) Get(ctx context.Context, key string) (*Object, error) {
	return s.backend.Get(ctx, key)
}

func (s *Storage) Delete(ctx context.Context, key string) error {
	return s.backend.Delete(ctx, key)
}

func (s *Storage) Bucket() string {
	return s.backend.Bucket()
}

func (s *Storage) Close() error {
	return s.backend.Close()
}

package storage

import (
	"bytes"
	"context"
	"io"
	"sync"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// Memory keeps objects in process memory. Used by tests and local runs.
type Memory struct {
	mu      sync.RWMutex
	bucket  string
	objects map[string]memoryObject
}

func NewMemory(bucket string) *Memory {
	return &Memory{bucket: bucket, objects: make(map[string]memoryObject)}
}

func (m *Memory) EnsureBucket(ctx context.Context) error {
	return nil
}

func (m *Memory) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	return nil
}

func (m *Memory) Get(ctx context.Context, key string) (*Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return &Object{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: obj.contentType,
		Size:        int64(len(obj.data)),
	}, nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	return nil
}

func (m *Memory) Bucket() string {
	return m.bucket
}

func (m *Memory) Close() error {
	return nil
}

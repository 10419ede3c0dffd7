package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/easytech/webapi/internal/docstore"
)

// TimeLayout is the createdAt format: UTC with millisecond precision.
const TimeLayout = "2006-01-02T15:04:05.000Z"

// records implements the operations every collection shares. prepare
// stamps the storage-assigned fields and defaults onto a new document.
type records[T any] struct {
	coll    docstore.Collection
	clock   func() time.Time
	prepare func(doc *T, id int, createdAt string)
}

func (r *records[T]) GetByID(ctx context.Context, id int) (T, error) {
	return r.findOne(ctx, docstore.Filter{docstore.IDField: id})
}

// List returns every record ordered by id.
func (r *records[T]) List(ctx context.Context) ([]T, error) {
	return r.find(ctx, docstore.Query{})
}

func (r *records[T]) Create(ctx context.Context, doc T) (T, error) {
	id, err := r.coll.NextID(ctx)
	if err != nil {
		var zero T
		return zero, r.wrap("next id", err)
	}
	r.prepare(&doc, id, r.clock().UTC().Format(TimeLayout))

	if err := r.coll.Insert(ctx, doc); err != nil {
		var zero T
		return zero, r.wrap("insert", err)
	}
	return doc, nil
}

// Update loads the record, applies the patch and persists the result.
func (r *records[T]) Update(ctx context.Context, id int, apply func(*T)) (T, error) {
	doc, err := r.GetByID(ctx, id)
	if err != nil {
		return doc, err
	}
	apply(&doc)

	if err := r.coll.Replace(ctx, id, doc); err != nil {
		var zero T
		return zero, r.wrap("replace", err)
	}
	return doc, nil
}

func (r *records[T]) findOne(ctx context.Context, filter docstore.Filter) (T, error) {
	var doc T
	if err := r.coll.FindOne(ctx, filter, &doc); err != nil {
		var zero T
		return zero, r.wrap("find", err)
	}
	return doc, nil
}

func (r *records[T]) find(ctx context.Context, q docstore.Query) ([]T, error) {
	docs := make([]T, 0)
	if err := r.coll.Find(ctx, q, &docs); err != nil {
		return nil, r.wrap("list", err)
	}
	return docs, nil
}

func (r *records[T]) wrap(op string, err error) error {
	switch {
	case errors.Is(err, docstore.ErrNoDocument):
		err = ErrNotFound
	case errors.Is(err, docstore.ErrDuplicate):
		err = ErrConflict
	}
	return fmt.Errorf("%s %s: %w", op, r.coll.Name(), err)
}

// Package docstore provides a small document-collection abstraction shared by
// the MongoDB, PostgreSQL and in-memory backends.
//
// Documents are encoded with their bson struct tags in every backend, so a
// type round-trips the same way no matter where it is stored. Every
// collection owns an integer sequence used for id assignment.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var (
	// ErrNoDocument is returned when a lookup or replace matches nothing.
	ErrNoDocument = errors.New("docstore: no document")
	// ErrDuplicate is returned when an insert violates a unique field.
	ErrDuplicate = errors.New("docstore: duplicate key")
)

// IDField is the integer key every document carries.
const IDField = "id"

// Filter matches documents whose fields equal the given values.
type Filter map[string]any

// Query describes a filtered, ordered and optionally limited scan.
type Query struct {
	Filter Filter
	// Exclude drops documents whose field equals the given value.
	Exclude    Filter
	SortBy     string
	Descending bool
	Limit      int
}

// Backend hands out collections and owns the underlying connection.
type Backend interface {
	Collection(name string) Collection
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// Collection is a named set of documents keyed by an integer id.
type Collection interface {
	Name() string
	// NextID atomically advances the collection sequence and returns it.
	NextID(ctx context.Context) (int, error)
	// SyncSequence raises the sequence to at least the highest stored id.
	SyncSequence(ctx context.Context) error
	EnsureUnique(ctx context.Context, field string) error
	Insert(ctx context.Context, doc any) error
	FindOne(ctx context.Context, filter Filter, out any) error
	// Find decodes all matches into out, which must point to a slice.
	Find(ctx context.Context, q Query, out any) error
	Replace(ctx context.Context, id int, doc any) error
	Count(ctx context.Context) (int64, error)
}

func (q Query) sortField() string {
	if q.SortBy == "" {
		return IDField
	}
	return q.SortBy
}

// documentID extracts the integer id of an encoded document.
func documentID(raw bson.Raw) (int, error) {
	value, err := raw.LookupErr(IDField)
	if err != nil {
		return 0, fmt.Errorf("docstore: document has no %q field", IDField)
	}
	switch value.Type {
	case bsontype.Int32:
		return int(value.Int32()), nil
	case bsontype.Int64:
		return int(value.Int64()), nil
	case bsontype.Double:
		return int(value.Double()), nil
	default:
		return 0, fmt.Errorf("docstore: %q has unsupported type %s", IDField, value.Type)
	}
}

// decodeAll unmarshals every raw document into the slice pointed to by out.
func decodeAll(raws [][]byte, out any, decode func([]byte, any) error) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Slice {
		return errors.New("docstore: out must be a pointer to a slice")
	}
	slice := rv.Elem()
	elemType := slice.Type().Elem()
	result := reflect.MakeSlice(slice.Type(), 0, len(raws))
	for _, raw := range raws {
		elem := reflect.New(elemType)
		if err := decode(raw, elem.Interface()); err != nil {
			return err
		}
		result = reflect.Append(result, elem.Elem())
	}
	slice.Set(result)
	return nil
}

func decodeBSON(data []byte, out any) error {
	return bson.Unmarshal(data, out)
}

package docstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// Memory is a process-local backend used for development and tests.
type Memory struct {
	mu          sync.Mutex
	collections map[string]*memoryCollection
}

// NewMemory constructs an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{collections: make(map[string]*memoryCollection)}
}

// Collection returns the named collection, creating it on first use.
func (m *Memory) Collection(name string) Collection {
	m.mu.Lock()
	defer m.mu.Unlock()
	coll, ok := m.collections[name]
	if !ok {
		coll = &memoryCollection{
			name:   name,
			docs:   make(map[int]bson.Raw),
			unique: make(map[string]struct{}),
		}
		m.collections[name] = coll
	}
	return coll
}

func (m *Memory) Ping(ctx context.Context) error {
	return nil
}

func (m *Memory) Close(ctx context.Context) error {
	return nil
}

type memoryCollection struct {
	name   string
	mu     sync.RWMutex
	seq    int
	docs   map[int]bson.Raw
	unique map[string]struct{}
}

func (c *memoryCollection) Name() string {
	return c.name
}

func (c *memoryCollection) NextID(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq, nil
}

func (c *memoryCollection) SyncSequence(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id := range c.docs {
		if id > c.seq {
			c.seq = id
		}
	}
	return nil
}

func (c *memoryCollection) EnsureUnique(ctx context.Context, field string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.unique[field] = struct{}{}
	return nil
}

func (c *memoryCollection) Insert(ctx context.Context, doc any) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	raw := bson.Raw(data)
	id, err := documentID(raw)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; exists {
		return ErrDuplicate
	}
	if c.violatesUnique(raw, id) {
		return ErrDuplicate
	}
	c.docs[id] = raw
	return nil
}

func (c *memoryCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	matches, err := c.match(Query{Filter: filter, Limit: 1})
	if err != nil {
		return err
	}
	if len(matches) == 0 {
		return ErrNoDocument
	}
	return bson.Unmarshal(matches[0], out)
}

func (c *memoryCollection) Find(ctx context.Context, q Query, out any) error {
	matches, err := c.match(q)
	if err != nil {
		return err
	}
	return decodeAll(matches, out, decodeBSON)
}

func (c *memoryCollection) Replace(ctx context.Context, id int, doc any) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	raw := bson.Raw(data)

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.docs[id]; !exists {
		return ErrNoDocument
	}
	if c.violatesUnique(raw, id) {
		return ErrDuplicate
	}
	c.docs[id] = raw
	return nil
}

func (c *memoryCollection) Count(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.docs)), nil
}

// violatesUnique must be called with the write lock held.
func (c *memoryCollection) violatesUnique(raw bson.Raw, id int) bool {
	for field := range c.unique {
		value := raw.Lookup(field)
		if value.Type == 0 {
			continue
		}
		for otherID, other := range c.docs {
			if otherID == id {
				continue
			}
			if valuesEqual(value, other.Lookup(field)) {
				return true
			}
		}
	}
	return false
}

func (c *memoryCollection) match(q Query) ([][]byte, error) {
	include, err := filterValues(q.Filter)
	if err != nil {
		return nil, err
	}
	exclude, err := filterValues(q.Exclude)
	if err != nil {
		return nil, err
	}

	c.mu.RLock()
	type entry struct {
		id  int
		raw bson.Raw
	}
	entries := make([]entry, 0, len(c.docs))
	for id, raw := range c.docs {
		if matchesAll(raw, include) && !matchesAny(raw, exclude) {
			entries = append(entries, entry{id: id, raw: raw})
		}
	}
	c.mu.RUnlock()

	field := q.sortField()
	sort.Slice(entries, func(i, j int) bool {
		cmp := compareValues(entries[i].raw.Lookup(field), entries[j].raw.Lookup(field))
		if cmp == 0 {
			cmp = entries[i].id - entries[j].id
		}
		if q.Descending {
			return cmp > 0
		}
		return cmp < 0
	})

	if q.Limit > 0 && len(entries) > q.Limit {
		entries = entries[:q.Limit]
	}
	result := make([][]byte, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.raw)
	}
	return result, nil
}

func filterValues(filter Filter) (map[string]bson.RawValue, error) {
	if len(filter) == 0 {
		return nil, nil
	}
	data, err := bson.Marshal(bson.M(filter))
	if err != nil {
		return nil, err
	}
	raw := bson.Raw(data)
	values := make(map[string]bson.RawValue, len(filter))
	for key := range filter {
		values[key] = raw.Lookup(key)
	}
	return values, nil
}

func matchesAll(raw bson.Raw, values map[string]bson.RawValue) bool {
	for key, want := range values {
		if !valuesEqual(raw.Lookup(key), want) {
			return false
		}
	}
	return true
}

func matchesAny(raw bson.Raw, values map[string]bson.RawValue) bool {
	for key, want := range values {
		if valuesEqual(raw.Lookup(key), want) {
			return true
		}
	}
	return false
}

func numeric(v bson.RawValue) (float64, bool) {
	switch v.Type {
	case bsontype.Int32:
		return float64(v.Int32()), true
	case bsontype.Int64:
		return float64(v.Int64()), true
	case bsontype.Double:
		return v.Double(), true
	default:
		return 0, false
	}
}

func valuesEqual(a, b bson.RawValue) bool {
	if a.Type == 0 || b.Type == 0 {
		return false
	}
	if an, ok := numeric(a); ok {
		bn, ok := numeric(b)
		return ok && an == bn
	}
	return a.Equal(b)
}

func compareValues(a, b bson.RawValue) int {
	if an, ok := numeric(a); ok {
		if bn, ok := numeric(b); ok {
			switch {
			case an < bn:
				return -1
			case an > bn:
				return 1
			default:
				return 0
			}
		}
	}
	as, aok := a.StringValueOK()
	bs, bok := b.StringValueOK()
	if aok && bok {
		return strings.Compare(as, bs)
	}
	return 0
}

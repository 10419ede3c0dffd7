package docstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lib/pq"
	"go.mongodb.org/mongo-driver/bson"
)

// Postgres keeps every collection in a single JSONB documents table. The
// schema lives in internal/db/migrations.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an open database handle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) Collection(name string) Collection {
	return &postgresCollection{db: p.db, name: name}
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func (p *Postgres) Close(ctx context.Context) error {
	return p.db.Close()
}

type postgresCollection struct {
	db   *sql.DB
	name string
}

func (c *postgresCollection) Name() string {
	return c.name
}

func (c *postgresCollection) NextID(ctx context.Context) (int, error) {
	const query = `
		INSERT INTO doc_sequences (name, value) VALUES ($1, 1)
		ON CONFLICT (name) DO UPDATE SET value = doc_sequences.value + 1
		RETURNING value`
	var id int
	if err := c.db.QueryRowContext(ctx, query, c.name).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (c *postgresCollection) SyncSequence(ctx context.Context) error {
	const query = `
		INSERT INTO doc_sequences (name, value)
		SELECT $1, COALESCE(MAX(id), 0) FROM documents WHERE collection = $1
		ON CONFLICT (name) DO UPDATE SET value = GREATEST(doc_sequences.value, EXCLUDED.value)`
	_, err := c.db.ExecContext(ctx, query, c.name)
	return err
}

func (c *postgresCollection) EnsureUnique(ctx context.Context, field string) error {
	index := pq.QuoteIdentifier(fmt.Sprintf("documents_%s_%s_key", c.name, field))
	query := fmt.Sprintf(
		`CREATE UNIQUE INDEX IF NOT EXISTS %s ON documents ((doc->>%s)) WHERE collection = %s`,
		index, pq.QuoteLiteral(field), pq.QuoteLiteral(c.name),
	)
	_, err := c.db.ExecContext(ctx, query)
	return err
}

func (c *postgresCollection) Insert(ctx context.Context, doc any) error {
	data, err := bson.Marshal(doc)
	if err != nil {
		return err
	}
	raw := bson.Raw(data)
	id, err := documentID(raw)
	if err != nil {
		return err
	}
	body, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return err
	}

	const query = `INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3::jsonb)`
	if _, err := c.db.ExecContext(ctx, query, c.name, id, string(body)); err != nil {
		return mapPostgresError(err)
	}
	return nil
}

func (c *postgresCollection) FindOne(ctx context.Context, filter Filter, out any) error {
	var docs [][]byte
	if err := c.query(ctx, Query{Filter: filter, Limit: 1}, &docs); err != nil {
		return err
	}
	if len(docs) == 0 {
		return ErrNoDocument
	}
	return decodeExtJSON(docs[0], out)
}

func (c *postgresCollection) Find(ctx context.Context, q Query, out any) error {
	var docs [][]byte
	if err := c.query(ctx, q, &docs); err != nil {
		return err
	}
	return decodeAll(docs, out, decodeExtJSON)
}

func (c *postgresCollection) Replace(ctx context.Context, id int, doc any) error {
	body, err := bson.MarshalExtJSON(doc, false, false)
	if err != nil {
		return err
	}

	const query = `UPDATE documents SET doc = $3::jsonb WHERE collection = $1 AND id = $2`
	result, err := c.db.ExecContext(ctx, query, c.name, id, string(body))
	if err != nil {
		return mapPostgresError(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNoDocument
	}
	return nil
}

func (c *postgresCollection) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(1) FROM documents WHERE collection = $1`
	var total int64
	if err := c.db.QueryRowContext(ctx, query, c.name).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (c *postgresCollection) query(ctx context.Context, q Query, docs *[][]byte) error {
	query, args, err := buildSelect(c.name, q)
	if err != nil {
		return err
	}
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return err
		}
		*docs = append(*docs, doc)
	}
	return rows.Err()
}

// buildSelect renders a Query into SQL. Equality filters use JSONB
// containment; excluded values are negated containment checks.
func buildSelect(collection string, q Query) (string, []any, error) {
	var b strings.Builder
	args := []any{collection}
	b.WriteString(`SELECT doc FROM documents WHERE collection = $1`)

	if len(q.Filter) > 0 {
		filter := bson.D{}
		for _, key := range sortedKeys(q.Filter) {
			filter = append(filter, bson.E{Key: key, Value: q.Filter[key]})
		}
		body, err := bson.MarshalExtJSON(filter, false, false)
		if err != nil {
			return "", nil, err
		}
		args = append(args, string(body))
		b.WriteString(` AND doc @> $` + strconv.Itoa(len(args)) + `::jsonb`)
	}
	for _, key := range sortedKeys(q.Exclude) {
		body, err := bson.MarshalExtJSON(bson.M{key: q.Exclude[key]}, false, false)
		if err != nil {
			return "", nil, err
		}
		args = append(args, string(body))
		b.WriteString(` AND NOT doc @> $` + strconv.Itoa(len(args)) + `::jsonb`)
	}

	direction := "ASC"
	if q.Descending {
		direction = "DESC"
	}
	if field := q.sortField(); field == IDField {
		b.WriteString(` ORDER BY id ` + direction)
	} else {
		b.WriteString(fmt.Sprintf(` ORDER BY doc->>%s %s, id %s`, pq.QuoteLiteral(field), direction, direction))
	}
	if q.Limit > 0 {
		b.WriteString(` LIMIT ` + strconv.Itoa(q.Limit))
	}
	return b.String(), args, nil
}

func sortedKeys(filter Filter) []string {
	keys := make([]string, 0, len(filter))
	for key := range filter {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func decodeExtJSON(data []byte, out any) error {
	return bson.UnmarshalExtJSON(data, false, out)
}

func mapPostgresError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}

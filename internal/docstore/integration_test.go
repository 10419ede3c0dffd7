//go:build integration
// +build integration

package docstore_test

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/easytech/webapi/internal/db"
	"github.com/easytech/webapi/internal/docstore"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type article struct {
	ID        int    `bson:"id"`
	Title     string `bson:"title"`
	Category  string `bson:"category"`
	Slug      string `bson:"slug"`
	CreatedAt string `bson:"createdAt"`
}

func setupMongo(t *testing.T) docstore.Backend {
	ctx := context.Background()

	container, err := mongodb.Run(ctx, "mongo:7")
	if err != nil {
		t.Fatalf("Failed to start MongoDB container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	require.NoError(t, err)

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)

	backend := docstore.NewMongo(client, "easytech_test")
	t.Cleanup(func() { _ = backend.Close(ctx) })
	return backend
}

func setupPostgres(t *testing.T) docstore.Backend {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	require.NoError(t, db.MigrateUp(dsn))

	sqlDB, err := sql.Open("postgres", dsn)
	require.NoError(t, err)

	backend := docstore.NewPostgres(sqlDB)
	t.Cleanup(func() { _ = backend.Close(ctx) })
	return backend
}

func TestMongoBackend(t *testing.T) {
	exerciseBackend(t, setupMongo(t))
}

func TestPostgresBackend(t *testing.T) {
	exerciseBackend(t, setupPostgres(t))
}

func exerciseBackend(t *testing.T, backend docstore.Backend) {
	ctx := context.Background()
	require.NoError(t, backend.Ping(ctx))

	coll := backend.Collection("articles")
	require.NoError(t, coll.EnsureUnique(ctx, "slug"))

	seed := []article{
		{ID: 1, Title: "One", Category: "cloud", Slug: "one", CreatedAt: "2024-01-01T00:00:00.000Z"},
		{ID: 7, Title: "Seven", Category: "cloud", Slug: "seven", CreatedAt: "2024-03-01T00:00:00.000Z"},
		{ID: 4, Title: "Four", Category: "security", Slug: "four", CreatedAt: "2024-02-01T00:00:00.000Z"},
	}
	for _, doc := range seed {
		require.NoError(t, coll.Insert(ctx, doc))
	}

	require.NoError(t, coll.SyncSequence(ctx))
	next, err := coll.NextID(ctx)
	require.NoError(t, err)
	assert.Equal(t, 8, next)

	err = coll.Insert(ctx, article{ID: next, Title: "Dup", Slug: "one"})
	assert.ErrorIs(t, err, docstore.ErrDuplicate)

	var found article
	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"slug": "four"}, &found))
	assert.Equal(t, 4, found.ID)

	err = coll.FindOne(ctx, docstore.Filter{"id": 99}, &found)
	assert.ErrorIs(t, err, docstore.ErrNoDocument)

	var related []article
	require.NoError(t, coll.Find(ctx, docstore.Query{
		Filter:  docstore.Filter{"category": "cloud"},
		Exclude: docstore.Filter{"id": 1},
		Limit:   3,
	}, &related))
	require.Len(t, related, 1)
	assert.Equal(t, 7, related[0].ID)

	var newest []article
	require.NoError(t, coll.Find(ctx, docstore.Query{SortBy: "createdAt", Descending: true}, &newest))
	require.Len(t, newest, 3)
	assert.Equal(t, []int{7, 4, 1}, []int{newest[0].ID, newest[1].ID, newest[2].ID})

	found.Title = "Four, revised"
	require.NoError(t, coll.Replace(ctx, 4, found))
	require.NoError(t, coll.FindOne(ctx, docstore.Filter{"id": 4}, &found))
	assert.Equal(t, "Four, revised", found.Title)

	count, err := coll.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)
}

func TestMongoSequenceIsAtomic(t *testing.T) {
	backend := setupMongo(t)
	coll := backend.Collection("counted")
	ctx := context.Background()

	const workers = 20
	ids := make(chan int, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := coll.NextID(ctx)
			if err == nil {
				ids <- id
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int]bool)
	for id := range ids {
		assert.False(t, seen[id], "id %d issued twice", id)
		seen[id] = true
	}
	assert.Len(t, seen, workers)
}

package store

import (
	"context"
	"testing"
	"time"

	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tickingClock returns a clock that advances one second per call.
func tickingClock() func() time.Time {
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s := New(docstore.NewMemory(), WithClock(tickingClock()))
	require.NoError(t, s.Init(context.Background()))
	return s
}

func TestCreateAssignsIDAndTimestamp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first, err := s.Services.Create(ctx, types.Service{ID: 42, Title: "IT Support", CreatedAt: "ignored"})
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "2024-05-01T09:00:01.000Z", first.CreatedAt)
	assert.NotNil(t, first.Features)

	second, err := s.Services.Create(ctx, types.Service{Title: "Cloud"})
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	got, err := s.Services.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Cloud", got.Title)
}

func TestGetByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Services.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListEmptyIsNotNil(t *testing.T) {
	s := newTestStore(t)
	list, err := s.Testimonials.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestUsernameUnique(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.Users.Create(ctx, types.User{Username: "alice", PasswordHash: "x"})
	require.NoError(t, err)

	_, err = s.Users.Create(ctx, types.User{Username: "alice", PasswordHash: "y"})
	assert.ErrorIs(t, err, ErrConflict)

	user, err := s.Users.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "x", user.PasswordHash)

	_, err = s.Users.GetByUsername(ctx, "Alice")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRelatedBlogPosts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, category := range []string{"Cloud", "Cloud", "Security", "Cloud", "Cloud", "Cloud"} {
		_, err := s.BlogPosts.Create(ctx, types.BlogPost{Title: "Post", Category: category})
		require.NoError(t, err)
	}

	related, err := s.BlogPosts.Related(ctx, 1)
	require.NoError(t, err)
	require.Len(t, related, 3)
	for _, post := range related {
		assert.NotEqual(t, 1, post.ID)
		assert.Equal(t, "Cloud", post.Category)
	}

	related, err = s.BlogPosts.Related(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, related)

	related, err = s.BlogPosts.Related(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, related)
	assert.Empty(t, related)
}

func TestNewsletterLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	sub, err := s.Newsletter.Create(ctx, types.NewsletterSubscription{Email: "a@example.com"})
	require.NoError(t, err)
	assert.True(t, sub.Active)

	sub, err = s.Newsletter.SetActive(ctx, sub.ID, false)
	require.NoError(t, err)
	assert.False(t, sub.Active)

	got, err := s.Newsletter.GetByEmail(ctx, "a@example.com")
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, sub.CreatedAt, got.CreatedAt)

	_, err = s.Newsletter.SetActive(ctx, 77, true)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Newsletter.Create(ctx, types.NewsletterSubscription{Email: "a@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBookingsByUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, owner := range []int{1, 2, 1, 1} {
		booking, err := s.Bookings.Create(ctx, types.BookingRequest{UserID: owner, ServiceID: 1, Status: types.BookingCompleted})
		require.NoError(t, err)
		assert.Equal(t, types.BookingPending, booking.Status)
	}

	list, err := s.Bookings.ListByUser(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []int{4, 3, 1}, []int{list[0].ID, list[1].ID, list[2].ID})

	none, err := s.Bookings.ListByUser(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestBookingUpdateStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	booking, err := s.Bookings.Create(ctx, types.BookingRequest{UserID: 1, ServiceID: 2})
	require.NoError(t, err)

	updated, err := s.Bookings.UpdateStatus(ctx, booking.ID, types.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, types.BookingConfirmed, updated.Status)

	_, err = s.Bookings.UpdateStatus(ctx, booking.ID, "archived")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = s.Bookings.UpdateStatus(ctx, 50, types.BookingCancelled)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInitSyncsSequences(t *testing.T) {
	backend := docstore.NewMemory()
	ctx := context.Background()
	require.NoError(t, backend.Collection(ServicesCollection).Insert(ctx, types.Service{ID: 10, Title: "Legacy"}))

	s := New(backend)
	require.NoError(t, s.Init(ctx))

	svc, err := s.Services.Create(ctx, types.Service{Title: "Fresh"})
	require.NoError(t, err)
	assert.Equal(t, 11, svc.ID)
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seeded, err := s.Seed(ctx, types.User{Username: "admin", Email: "admin@easytech.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.True(t, seeded)

	services, err := s.Services.List(ctx)
	require.NoError(t, err)
	require.Len(t, services, 3)
	assert.Equal(t, "IT Support", services[0].Title)

	posts, err := s.BlogPosts.List(ctx)
	require.NoError(t, err)
	assert.Len(t, posts, 3)

	testimonials, err := s.Testimonials.List(ctx)
	require.NoError(t, err)
	assert.Len(t, testimonials, 3)

	seeded, err = s.Seed(ctx, types.User{Username: "other"})
	require.NoError(t, err)
	assert.False(t, seeded)

	services, err = s.Services.List(ctx)
	require.NoError(t, err)
	assert.Len(t, services, 3)
}

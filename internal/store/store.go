// Package store holds the repositories for every site collection on top of
// a docstore backend.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/easytech/webapi/internal/docstore"
)

// Collection names.
const (
	UsersCollection        = "users"
	ServicesCollection     = "services"
	BlogPostsCollection    = "blogPosts"
	TestimonialsCollection = "testimonials"
	ContactCollection      = "contactSubmissions"
	NewsletterCollection   = "newsletterSubscriptions"
	BookingsCollection     = "bookingRequests"
)

type clockFunc func() time.Time

// Option customizes a Store.
type Option func(*options)

type options struct {
	clock clockFunc
}

// WithClock overrides the time source used for createdAt.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

// Store groups the repositories sharing one backend.
type Store struct {
	backend docstore.Backend

	Users        *UserRepository
	Services     *ServiceRepository
	BlogPosts    *BlogPostRepository
	Testimonials *TestimonialRepository
	Contacts     *ContactRepository
	Newsletter   *NewsletterRepository
	Bookings     *BookingRepository
}

func New(backend docstore.Backend, opts ...Option) *Store {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Store{
		backend:      backend,
		Users:        newUserRepository(backend.Collection(UsersCollection), o.clock),
		Services:     newServiceRepository(backend.Collection(ServicesCollection), o.clock),
		BlogPosts:    newBlogPostRepository(backend.Collection(BlogPostsCollection), o.clock),
		Testimonials: newTestimonialRepository(backend.Collection(TestimonialsCollection), o.clock),
		Contacts:     newContactRepository(backend.Collection(ContactCollection), o.clock),
		Newsletter:   newNewsletterRepository(backend.Collection(NewsletterCollection), o.clock),
		Bookings:     newBookingRepository(backend.Collection(BookingsCollection), o.clock),
	}
}

// Init creates the unique indexes and brings every id sequence up to the
// highest stored id. It must run before the first write.
func (s *Store) Init(ctx context.Context) error {
	unique := map[string]string{
		UsersCollection:      "username",
		NewsletterCollection: "email",
	}
	for name, field := range unique {
		if err := s.backend.Collection(name).EnsureUnique(ctx, field); err != nil {
			return fmt.Errorf("ensure unique %s.%s: %w", name, field, err)
		}
	}

	for _, name := range s.collections() {
		if err := s.backend.Collection(name).SyncSequence(ctx); err != nil {
			return fmt.Errorf("sync sequence %s: %w", name, err)
		}
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.backend.Ping(ctx)
}

func (s *Store) Close(ctx context.Context) error {
	return s.backend.Close(ctx)
}

func (s *Store) collections() []string {
	return []string{
		UsersCollection,
		ServicesCollection,
		BlogPostsCollection,
		TestimonialsCollection,
		ContactCollection,
		NewsletterCollection,
		BookingsCollection,
	}
}

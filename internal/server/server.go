package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/easytech/webapi/config"
	"github.com/easytech/webapi/internal/db"
	"github.com/easytech/webapi/internal/handlers"
	"github.com/easytech/webapi/internal/mq"
	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/internal/session"
	"github.com/easytech/webapi/internal/storage"
	"github.com/easytech/webapi/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Deps are the shared handles the HTTP layer is built from.
type Deps struct {
	Store    *store.Store
	Sessions *session.Manager
	Events   *mq.MQ
	// Media is nil when no object storage is configured.
	Media *storage.Storage
	// PasswordCost overrides the bcrypt cost; zero keeps the default.
	PasswordCost int
}

// Server wraps the HTTP server and the resources it owns.
type Server struct {
	httpServer *http.Server
	router     http.Handler
	deps       Deps
}

// New connects every configured backend, prepares the document store and
// seeds it on first run.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	backend, err := db.OpenDocumentStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	deps := Deps{Store: store.New(backend)}

	fail := func(err error) (*Server, error) {
		closeDeps(context.Background(), deps)
		return nil, err
	}

	if err := deps.Store.Init(ctx); err != nil {
		return fail(fmt.Errorf("init store: %w", err))
	}
	if deps.Sessions, err = session.Open(ctx, cfg); err != nil {
		return fail(err)
	}
	if deps.Events, err = mq.Open(ctx, cfg); err != nil {
		return fail(err)
	}
	if deps.Media, err = storage.Open(ctx, cfg); err != nil {
		return fail(err)
	}

	users := services.NewUserService(deps.Store.Users)
	if seeded, err := services.SeedSiteContent(ctx, deps.Store, users, cfg.SeedAdminPassword); err != nil {
		log.Printf("seeding failed: %v", err)
	} else if seeded {
		log.Println("seeded initial site content")
	}

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	router := NewHandler(deps)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		deps:       deps,
	}, nil
}

// NewHandler builds the API router over already-connected dependencies.
func NewHandler(deps Deps) http.Handler {
	events := deps.Events
	if events == nil {
		events = mq.New(mq.Noop{}, "")
	}

	users := services.NewUserService(deps.Store.Users)
	if deps.PasswordCost > 0 {
		users = users.WithHashCost(deps.PasswordCost)
	}
	content := services.NewContentService(deps.Store.Services, deps.Store.BlogPosts, deps.Store.Testimonials)
	contact := services.NewContactService(deps.Store.Contacts, events)
	newsletter := services.NewNewsletterService(deps.Store.Newsletter, events)
	bookings := services.NewBookingService(deps.Store.Bookings, events)

	authMiddleware := handlers.RequireAuth(deps.Sessions, users)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz(deps.Store))
	router.Route("/api", func(r chi.Router) {
		handlers.AuthRouter(r, users, users, deps.Sessions, authMiddleware)
		handlers.InquiryRouter(r, contact, newsletter)
		r.Route("/services", func(r chi.Router) {
			handlers.ServiceRouter(r, content, authMiddleware)
		})
		r.Route("/blog-posts", func(r chi.Router) {
			handlers.BlogRouter(r, content, authMiddleware)
		})
		r.Route("/testimonials", func(r chi.Router) {
			handlers.TestimonialRouter(r, content, authMiddleware)
		})
		r.Route("/bookings", func(r chi.Router) {
			handlers.BookingRouter(r, bookings, authMiddleware)
		})
		if deps.Media != nil {
			r.Route("/media", func(r chi.Router) {
				handlers.MediaRouter(r, deps.Media, authMiddleware)
			})
		}
	})

	return router
}

// Router exposes the HTTP handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests and then releases every backend.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	closeDeps(ctx, s.deps)
	return err
}

func closeDeps(ctx context.Context, deps Deps) {
	if deps.Media != nil {
		if err := deps.Media.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}
	if deps.Events != nil {
		if err := deps.Events.Close(); err != nil {
			log.Printf("close mq: %v", err)
		}
	}
	if deps.Sessions != nil {
		if err := deps.Sessions.Close(); err != nil {
			log.Printf("close sessions: %v", err)
		}
	}
	if deps.Store != nil {
		if err := deps.Store.Close(ctx); err != nil {
			log.Printf("close store: %v", err)
		}
	}
}

package services

import (
	"context"

	"github.com/easytech/webapi/internal/validation"
	"github.com/easytech/webapi/types"
)

type ServiceRepository interface {
	GetByID(ctx context.Context, id int) (types.Service, error)
	List(ctx context.Context) ([]types.Service, error)
	Create(ctx context.Context, service types.Service) (types.Service, error)
}

type BlogPostRepository interface {
	GetByID(ctx context.Context, id int) (types.BlogPost, error)
	List(ctx context.Context) ([]types.BlogPost, error)
	Related(ctx context.Context, id int) ([]types.BlogPost, error)
	Create(ctx context.Context, post types.BlogPost) (types.BlogPost, error)
}

type TestimonialRepository interface {
	List(ctx context.Context) ([]types.Testimonial, error)
	Create(ctx context.Context, testimonial types.Testimonial) (types.Testimonial, error)
}

// ContentService serves the marketing content: offerings, blog posts and
// testimonials.
type ContentService struct {
	services     ServiceRepository
	posts        BlogPostRepository
	testimonials TestimonialRepository
}

func NewContentService(services ServiceRepository, posts BlogPostRepository, testimonials TestimonialRepository) *ContentService {
	return &ContentService{services: services, posts: posts, testimonials: testimonials}
}

func (s *ContentService) ListServices(ctx context.Context) ([]types.Service, error) {
	return s.services.List(ctx)
}

func (s *ContentService) GetService(ctx context.Context, id int) (types.Service, error) {
	return s.services.GetByID(ctx, id)
}

func (s *ContentService) CreateService(ctx context.Context, req types.CreateServiceRequest) (types.Service, error) {
	if err := validation.Struct(req); err != nil {
		return types.Service{}, err
	}
	return s.services.Create(ctx, req.Service())
}

func (s *ContentService) ListBlogPosts(ctx context.Context) ([]types.BlogPost, error) {
	return s.posts.List(ctx)
}

func (s *ContentService) GetBlogPost(ctx context.Context, id int) (types.BlogPost, error) {
	return s.posts.GetByID(ctx, id)
}

func (s *ContentService) RelatedBlogPosts(ctx context.Context, id int) ([]types.BlogPost, error) {
	return s.posts.Related(ctx, id)
}

func (s *ContentService) CreateBlogPost(ctx context.Context, req types.CreateBlogPostRequest) (types.BlogPost, error) {
	if err := validation.Struct(req); err != nil {
		return types.BlogPost{}, err
	}
	return s.posts.Create(ctx, req.BlogPost())
}

func (s *ContentService) ListTestimonials(ctx context.Context) ([]types.Testimonial, error) {
	return s.testimonials.List(ctx)
}

func (s *ContentService) CreateTestimonial(ctx context.Context, req types.CreateTestimonialRequest) (types.Testimonial, error) {
	if err := validation.Struct(req); err != nil {
		return types.Testimonial{}, err
	}
	return s.testimonials.Create(ctx, req.Testimonial())
}

package store

import (
	"context"
	"errors"

	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
)

const relatedPostsLimit = 3

// BlogPostRepository handles persistence for blog posts.
type BlogPostRepository struct {
	records[types.BlogPost]
}

func newBlogPostRepository(coll docstore.Collection, clock clockFunc) *BlogPostRepository {
	return &BlogPostRepository{records[types.BlogPost]{
		coll:  coll,
		clock: clock,
		prepare: func(p *types.BlogPost, id int, createdAt string) {
			p.ID = id
			p.CreatedAt = createdAt
		},
	}}
}

// Related returns up to three other posts sharing the category of post id.
// An unknown id yields an empty list rather than an error.
func (r *BlogPostRepository) Related(ctx context.Context, id int) ([]types.BlogPost, error) {
	post, err := r.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []types.BlogPost{}, nil
		}
		return nil, err
	}

	return r.find(ctx, docstore.Query{
		Filter:  docstore.Filter{"category": post.Category},
		Exclude: docstore.Filter{docstore.IDField: id},
		Limit:   relatedPostsLimit,
	})
}

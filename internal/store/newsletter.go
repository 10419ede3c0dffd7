package store

import (
	"context"

	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
)

// NewsletterRepository handles persistence for newsletter subscriptions.
type NewsletterRepository struct {
	records[types.NewsletterSubscription]
}

func newNewsletterRepository(coll docstore.Collection, clock clockFunc) *NewsletterRepository {
	return &NewsletterRepository{records[types.NewsletterSubscription]{
		coll:  coll,
		clock: clock,
		prepare: func(n *types.NewsletterSubscription, id int, createdAt string) {
			n.ID = id
			n.CreatedAt = createdAt
			n.Active = true
		},
	}}
}

func (r *NewsletterRepository) GetByEmail(ctx context.Context, email string) (types.NewsletterSubscription, error) {
	return r.findOne(ctx, docstore.Filter{"email": email})
}

func (r *NewsletterRepository) SetActive(ctx context.Context, id int, active bool) (types.NewsletterSubscription, error) {
	return r.Update(ctx, id, func(n *types.NewsletterSubscription) {
		n.Active = active
	})
}

package services

import (
	"context"
	"errors"

	"github.com/easytech/webapi/internal/mq"
	"github.com/easytech/webapi/internal/store"
	"github.com/easytech/webapi/internal/validation"
	"github.com/easytech/webapi/types"
)

type NewsletterRepository interface {
	GetByEmail(ctx context.Context, email string) (types.NewsletterSubscription, error)
	Create(ctx context.Context, sub types.NewsletterSubscription) (types.NewsletterSubscription, error)
	SetActive(ctx context.Context, id int, active bool) (types.NewsletterSubscription, error)
}

type NewsletterService struct {
	repo   NewsletterRepository
	events EventPublisher
}

func NewNewsletterService(repo NewsletterRepository, events EventPublisher) *NewsletterService {
	return &NewsletterService{repo: repo, events: events}
}

// Subscribe adds email to the mailing list. An inactive subscription is
// switched back on and reported with reactivated set; an active one fails
// with ErrAlreadySubscribed.
func (s *NewsletterService) Subscribe(ctx context.Context, req types.NewsletterRequest) (sub types.NewsletterSubscription, reactivated bool, err error) {
	if err := validation.Struct(req); err != nil {
		return types.NewsletterSubscription{}, false, err
	}

	existing, err := s.repo.GetByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.Active:
		return types.NewsletterSubscription{}, false, ErrAlreadySubscribed
	case err == nil:
		sub, err = s.repo.SetActive(ctx, existing.ID, true)
		return sub, err == nil, err
	case !errors.Is(err, store.ErrNotFound):
		return types.NewsletterSubscription{}, false, err
	}

	sub, err = s.repo.Create(ctx, types.NewsletterSubscription{Email: req.Email})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.NewsletterSubscription{}, false, ErrAlreadySubscribed
		}
		return types.NewsletterSubscription{}, false, err
	}
	notify(ctx, s.events, mq.EventNewsletterSubscribed, sub)
	return sub, false, nil
}

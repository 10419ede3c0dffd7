package services

import (
	"context"

	"github.com/easytech/webapi/internal/mq"
	"github.com/easytech/webapi/internal/validation"
	"github.com/easytech/webapi/types"
)

type ContactRepository interface {
	Create(ctx context.Context, submission types.ContactSubmission) (types.ContactSubmission, error)
}

type ContactService struct {
	repo   ContactRepository
	events EventPublisher
}

func NewContactService(repo ContactRepository, events EventPublisher) *ContactService {
	return &ContactService{repo: repo, events: events}
}

// Submit stores a contact form message and announces it.
func (s *ContactService) Submit(ctx context.Context, req types.ContactRequest) (types.ContactSubmission, error) {
	if err := validation.Struct(req); err != nil {
		return types.ContactSubmission{}, err
	}
	submission, err := s.repo.Create(ctx, req.Submission())
	if err != nil {
		return types.ContactSubmission{}, err
	}
	notify(ctx, s.events, mq.EventContactSubmitted, submission)
	return submission, nil
}

package services

import (
	"context"

	"github.com/easytech/webapi/internal/mq"
	"github.com/easytech/webapi/internal/validation"
	"github.com/easytech/webapi/types"
)

type BookingRepository interface {
	Create(ctx context.Context, booking types.BookingRequest) (types.BookingRequest, error)
	ListByUser(ctx context.Context, userID int) ([]types.BookingRequest, error)
	UpdateStatus(ctx context.Context, id int, status types.BookingStatus) (types.BookingRequest, error)
}

type BookingService struct {
	repo   BookingRepository
	events EventPublisher
}

func NewBookingService(repo BookingRepository, events EventPublisher) *BookingService {
	return &BookingService{repo: repo, events: events}
}

// Request stores a consultation request for req.UserID, which callers take
// from the authenticated session.
func (s *BookingService) Request(ctx context.Context, req types.CreateBookingRequest) (types.BookingRequest, error) {
	if err := validation.Struct(req); err != nil {
		return types.BookingRequest{}, err
	}
	booking, err := s.repo.Create(ctx, req.Booking())
	if err != nil {
		return types.BookingRequest{}, err
	}
	notify(ctx, s.events, mq.EventBookingRequested, booking)
	return booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID int) ([]types.BookingRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *BookingService) UpdateStatus(ctx context.Context, id int, status types.BookingStatus) (types.BookingRequest, error) {
	return s.repo.UpdateStatus(ctx, id, status)
}

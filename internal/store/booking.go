package store

import (
	"context"
	"fmt"

	"github.com/easytech/webapi/internal/docstore"
	"github.com/easytech/webapi/types"
)

// BookingRepository handles persistence for booking requests.
type BookingRepository struct {
	records[types.BookingRequest]
}

func newBookingRepository(coll docstore.Collection, clock clockFunc) *BookingRepository {
	return &BookingRepository{records[types.BookingRequest]{
		coll:  coll,
		clock: clock,
		prepare: func(b *types.BookingRequest, id int, createdAt string) {
			b.ID = id
			b.CreatedAt = createdAt
			b.Status = types.BookingPending
		},
	}}
}

// ListByUser returns the bookings owned by userID, newest first.
func (r *BookingRepository) ListByUser(ctx context.Context, userID int) ([]types.BookingRequest, error) {
	return r.find(ctx, docstore.Query{
		Filter:     docstore.Filter{"userId": userID},
		SortBy:     "createdAt",
		Descending: true,
	})
}

func (r *BookingRepository) UpdateStatus(ctx context.Context, id int, status types.BookingStatus) (types.BookingRequest, error) {
	if !status.Valid() {
		return types.BookingRequest{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return r.Update(ctx, id, func(b *types.BookingRequest) {
		b.Status = status
	})
}

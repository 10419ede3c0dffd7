package types

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking states.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	default:
		return false
	}
}

// BookingRequest is a consultation request owned by the user who made it.
type BookingRequest struct {
	ID        int           `json:"id" bson:"id"`
	UserID    int           `json:"userId" bson:"userId"`
	ServiceID int           `json:"serviceId" bson:"serviceId"`
	Date      string        `json:"date" bson:"date"`
	Time      string        `json:"time" bson:"time"`
	Notes     string        `json:"notes,omitempty" bson:"notes,omitempty"`
	Status    BookingStatus `json:"status" bson:"status"`
	CreatedAt string        `json:"createdAt" bson:"createdAt"`
}

// CreateBookingRequest is the booking payload. UserID always comes from the
// session, never from the request body.
type CreateBookingRequest struct {
	UserID    int    `json:"-" validate:"gt=0"`
	ServiceID int    `json:"serviceId" validate:"gt=0"`
	Date      string `json:"date" validate:"required"`
	Time      string `json:"time" validate:"required"`
	Notes     string `json:"notes"`
}

func (r CreateBookingRequest) Booking() BookingRequest {
	return BookingRequest{
		UserID:    r.UserID,
		ServiceID: r.ServiceID,
		Date:      r.Date,
		Time:      r.Time,
		Notes:     r.Notes,
	}
}

package handlers

import (
	"net/http"

	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/types"
	"github.com/go-chi/chi/v5"
)

type BookingHandler struct {
	bookings *services.BookingService
}

func NewBookingHandler(bookings *services.BookingService) *BookingHandler {
	return &BookingHandler{bookings: bookings}
}

// BookingRouter registers booking routes. Every route requires a session.
func BookingRouter(r chi.Router, bookings *services.BookingService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewBookingHandler(bookings)

	r.Use(authMiddleware)
	r.Get("/", handler.ListBookings)
	r.Post("/", handler.CreateBooking)
}

type BookingCreatedResponse struct {
	Message string               `json:"message"`
	Booking types.BookingRequest `json:"booking"`
}

func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateBookingRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.UserID = user.ID

	booking, err := h.bookings.Request(r.Context(), req)
	if err != nil {
		writeFailure(w, err, "Error creating booking request")
		return
	}
	writeJSON(w, http.StatusCreated, BookingCreatedResponse{Message: "Booking request submitted successfully", Booking: booking})
}

// ListBookings returns the caller's bookings, newest first.
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookings, err := h.bookings.ListForUser(r.Context(), user.ID)
	if err != nil {
		writeFailure(w, err, "Error fetching bookings")
		return
	}
	writeJSON(w, http.StatusOK, bookings)
}

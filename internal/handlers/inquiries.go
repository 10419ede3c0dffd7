package handlers

import (
	"errors"
	"net/http"

	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/types"
	"github.com/go-chi/chi/v5"
)

// InquiryHandler takes contact form messages and newsletter sign-ups.
type InquiryHandler struct {
	contact    *services.ContactService
	newsletter *services.NewsletterService
}

func NewInquiryHandler(contact *services.ContactService, newsletter *services.NewsletterService) *InquiryHandler {
	return &InquiryHandler{contact: contact, newsletter: newsletter}
}

func InquiryRouter(r chi.Router, contact *services.ContactService, newsletter *services.NewsletterService) {
	handler := NewInquiryHandler(contact, newsletter)

	r.Post("/contact", handler.SubmitContact)
	r.Post("/newsletter-subscribe", handler.Subscribe)
}

type ContactResponse struct {
	Message    string                  `json:"message"`
	Submission types.ContactSubmission `json:"submission"`
}

type SubscriptionResponse struct {
	Message      string                       `json:"message"`
	Subscription types.NewsletterSubscription `json:"subscription"`
}

func (h *InquiryHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var req types.ContactRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	submission, err := h.contact.Submit(r.Context(), req)
	if err != nil {
		writeFailure(w, err, "Error submitting contact form")
		return
	}
	writeJSON(w, http.StatusCreated, ContactResponse{Message: "Contact form submitted successfully", Submission: submission})
}

func (h *InquiryHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req types.NewsletterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sub, reactivated, err := h.newsletter.Subscribe(r.Context(), req)
	switch {
	case errors.Is(err, services.ErrAlreadySubscribed):
		writeError(w, http.StatusBadRequest, "Email already subscribed")
	case err != nil:
		writeFailure(w, err, "Error subscribing to newsletter")
	case reactivated:
		writeJSON(w, http.StatusOK, MessageResponse{Message: "Subscription reactivated successfully"})
	default:
		writeJSON(w, http.StatusCreated, SubscriptionResponse{Message: "Subscribed to newsletter successfully", Subscription: sub})
	}
}

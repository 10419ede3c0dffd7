package handlers

import (
	"net/http"

	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/types"
	"github.com/go-chi/chi/v5"
)

type TestimonialHandler struct {
	content *services.ContentService
}

func NewTestimonialHandler(content *services.ContentService) *TestimonialHandler {
	return &TestimonialHandler{content: content}
}

func TestimonialRouter(r chi.Router, content *services.ContentService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewTestimonialHandler(content)

	r.Get("/", handler.ListTestimonials)
	r.With(authMiddleware).Post("/", handler.CreateTestimonial)
}

type TestimonialCreatedResponse struct {
	Message     string            `json:"message"`
	Testimonial types.Testimonial `json:"testimonial"`
}

func (h *TestimonialHandler) ListTestimonials(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListTestimonials(r.Context())
	if err != nil {
		writeFailure(w, err, "Error fetching testimonials")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *TestimonialHandler) CreateTestimonial(w http.ResponseWriter, r *http.Request) {
	var req types.CreateTestimonialRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.content.CreateTestimonial(r.Context(), req)
	if err != nil {
		writeFailure(w, err, "Error creating testimonial")
		return
	}
	writeJSON(w, http.StatusCreated, TestimonialCreatedResponse{Message: "Testimonial created successfully", Testimonial: item})
}

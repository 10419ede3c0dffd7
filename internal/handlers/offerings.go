package handlers

import (
	"errors"
	"net/http"

	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/internal/store"
	"github.com/easytech/webapi/types"
	"github.com/go-chi/chi/v5"
)

// ServiceHandler serves the offerings catalogue.
type ServiceHandler struct {
	content *services.ContentService
}

func NewServiceHandler(content *services.ContentService) *ServiceHandler {
	return &ServiceHandler{content: content}
}

// ServiceRouter registers offering routes on the given router.
func ServiceRouter(r chi.Router, content *services.ContentService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewServiceHandler(content)

	r.Get("/", handler.ListServices)
	r.With(authMiddleware).Post("/", handler.CreateService)
	r.Get("/{serviceID}", handler.GetService)
}

type ServiceCreatedResponse struct {
	Message string        `json:"message"`
	Service types.Service `json:"service"`
}

func (h *ServiceHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	items, err := h.content.ListServices(r.Context())
	if err != nil {
		writeFailure(w, err, "Error fetching services")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *ServiceHandler) GetService(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "serviceID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	item, err := h.content.GetService(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Service not found")
			return
		}
		writeFailure(w, err, "Error fetching service")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *ServiceHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req types.CreateServiceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	item, err := h.content.CreateService(r.Context(), req)
	if err != nil {
		writeFailure(w, err, "Error creating service")
		return
	}
	writeJSON(w, http.StatusCreated, ServiceCreatedResponse{Message: "Service created successfully", Service: item})
}

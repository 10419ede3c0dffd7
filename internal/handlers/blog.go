package handlers

import (
	"errors"
	"net/http"

	"github.com/easytech/webapi/internal/services"
	"github.com/easytech/webapi/internal/store"
	"github.com/easytech/webapi/types"
	"github.com/go-chi/chi/v5"
)

type BlogHandler struct {
	content *services.ContentService
}

func NewBlogHandler(content *services.ContentService) *BlogHandler {
	return &BlogHandler{content: content}
}

// BlogRouter registers blog post routes on the given router.
func BlogRouter(r chi.Router, content *services.ContentService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewBlogHandler(content)

	r.Get("/", handler.ListPosts)
	r.With(authMiddleware).Post("/", handler.CreatePost)
	r.Get("/related/{postID}", handler.RelatedPosts)
	r.Get("/{postID}", handler.GetPost)
}

type BlogPostCreatedResponse struct {
	Message  string         `json:"message"`
	BlogPost types.BlogPost `json:"blogPost"`
}

func (h *BlogHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListBlogPosts(r.Context())
	if err != nil {
		writeFailure(w, err, "Error fetching blog posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	post, err := h.content.GetBlogPost(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Blog post not found")
			return
		}
		writeFailure(w, err, "Error fetching blog post")
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// RelatedPosts answers with an empty list when the post does not exist.
func (h *BlogHandler) RelatedPosts(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r, "postID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ID format")
		return
	}

	posts, err := h.content.RelatedBlogPosts(r.Context(), id)
	if err != nil {
		writeFailure(w, err, "Error fetching related blog posts")
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *BlogHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	var req types.CreateBlogPostRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	post, err := h.content.CreateBlogPost(r.Context(), req)
	if err != nil {
		writeFailure(w, err, "Error creating blog post")
		return
	}
	writeJSON(w, http.StatusCreated, BlogPostCreatedResponse{Message: "Blog post created successfully", BlogPost: post})
}

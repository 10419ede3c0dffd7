package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/easytech/webapi/internal/storage"
	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const (
	maxMediaBytes      = 5 << 20
	maxMultipartMemory = 1 << 20
	formFieldFile      = "file"
	mediaPrefix        = "media/"
)

var allowedMediaTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

// MediaStorage is the object store uploads are written to.
type MediaStorage interface {
	Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error
	Get(ctx context.Context, key string) (*storage.Object, error)
}

type MediaHandler struct {
	storage MediaStorage
}

func NewMediaHandler(storage MediaStorage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// MediaRouter registers upload and download routes for site images.
func MediaRouter(r chi.Router, storage MediaStorage, authMiddleware func(http.Handler) http.Handler) {
	handler := NewMediaHandler(storage)

	r.With(authMiddleware).Post("/", handler.Upload)
	r.Get("/*", handler.Download)
}

type MediaUploadResponse struct {
	Message string `json:"message"`
	URL     string `json:"url"`
	Key     string `json:"key"`
}

// Upload stores one image from the multipart "file" field. The type is
// sniffed from the content; the client's Content-Type is ignored.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxMediaBytes+maxMultipartMemory)
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File exceeds the 5 MiB limit")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(formFieldFile)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing file field")
		return
	}
	defer file.Close()

	if header.Size > maxMediaBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "File exceeds the 5 MiB limit")
		return
	}

	mtype, err := mimetype.DetectReader(file)
	if err != nil {
		writeFailure(w, err, "Error uploading file")
		return
	}
	if !mimetype.EqualsAny(mtype.String(), allowedMediaTypes...) {
		writeError(w, http.StatusUnsupportedMediaType, "Only JPEG, PNG, GIF, WebP and SVG images are allowed")
		return
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		writeFailure(w, err, "Error uploading file")
		return
	}

	key := mediaKey(header.Filename, mtype.Extension())
	if err := h.storage.Put(r.Context(), key, file, header.Size, mtype.String()); err != nil {
		writeFailure(w, err, "Error uploading file")
		return
	}

	writeJSON(w, http.StatusCreated, MediaUploadResponse{
		Message: "File uploaded successfully",
		URL:     "/api/media/" + key,
		Key:     key,
	})
}

func (h *MediaHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "*")
	if !validMediaKey(key) {
		writeError(w, http.StatusNotFound, "File not found")
		return
	}

	obj, err := h.storage.Get(r.Context(), key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			writeError(w, http.StatusNotFound, "File not found")
			return
		}
		writeFailure(w, err, "Error fetching file")
		return
	}
	defer obj.Body.Close()

	if obj.ContentType != "" {
		w.Header().Set("Content-Type", obj.ContentType)
	}
	if obj.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	// keys embed a uuid and are never overwritten
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, obj.Body)
}

// mediaKey builds media/<uuid>-<slug><ext> from the uploaded file name.
func mediaKey(filename, ext string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	name := slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	if name == "" {
		return mediaPrefix + uuid.NewString() + ext
	}
	return mediaPrefix + uuid.NewString() + "-" + name + ext
}

func validMediaKey(key string) bool {
	if !strings.HasPrefix(key, mediaPrefix) || len(key) == len(mediaPrefix) {
		return false
	}
	return path.Clean(key) == key
}

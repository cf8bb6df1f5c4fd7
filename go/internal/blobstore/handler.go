package blobstore

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/mcdev12/bpl/go/internal/apperr"
	"github.com/mcdev12/bpl/go/internal/httpx"
	"github.com/rs/zerolog/log"
)

// MaxUploadSize is the largest accepted image, in bytes.
const MaxUploadSize = 5 << 20

// multipart framing allowance on top of the file itself
const formOverhead = 1 << 20

// UploadResult describes a stored upload
type UploadResult struct {
	URL         string `json:"url"`
	Pathname    string `json:"pathname"`
	ContentType string `json:"contentType"`
}

// Handler serves uploads and downloads of blobs
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Register mounts the blob routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /upload", h.Upload)
	mux.HandleFunc("GET /blobs/{key}", h.Serve)
}

// Upload stores the multipart "file" field. Only images up to
// MaxUploadSize are accepted.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadSize+formOverhead)
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.WriteError(w, apperr.Validation("File size must be less than 5MB"))
			return
		}
		httpx.WriteError(w, apperr.Validation("invalid multipart form"))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		httpx.WriteError(w, apperr.Validation("No file provided"))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		httpx.WriteError(w, apperr.Validation("File must be an image"))
		return
	}
	if header.Size > MaxUploadSize {
		httpx.WriteError(w, apperr.Validation("File size must be less than 5MB"))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, MaxUploadSize+1))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	if len(data) > MaxUploadSize {
		httpx.WriteError(w, apperr.Validation("File size must be less than 5MB"))
		return
	}

	key := NewKey(header.Filename)
	if err := h.store.Put(key, contentType, data); err != nil {
		httpx.WriteError(w, err)
		return
	}

	log.Info().Str("key", key).Int("bytes", len(data)).Str("content_type", contentType).Msg("stored upload")
	httpx.WriteJSON(w, http.StatusOK, UploadResult{
		URL:         "/blobs/" + key,
		Pathname:    key,
		ContentType: contentType,
	})
}

// Serve writes the blob stored under the {key} path segment.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	blob, err := h.store.Get(r.PathValue("key"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(blob.Data); err != nil {
		log.Warn().Err(err).Str("key", blob.Key).Msg("failed to send blob")
	}
}

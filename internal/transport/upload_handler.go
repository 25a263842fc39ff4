package transport

import (
	"net/http"
	"strings"

	"inza-store/internal/middleware"
	"inza-store/internal/storage"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// maxUploadSize bounds product and banner image uploads.
const maxUploadSize = 10 << 20 // 10 MiB

// uploadKinds are the accepted upload categories, each stored in its own
// subdirectory.
var uploadKinds = map[string]bool{
	"products":   true,
	"categories": true,
	"banners":    true,
}

// UploadResponse represents the stored image's public URL
type UploadResponse struct {
	URL string `json:"url"`
}

// UploadHandler handles admin image uploads
type UploadHandler struct {
	store  *storage.ImageStore
	logger *zap.Logger
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(store *storage.ImageStore, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		store:  store,
		logger: logger,
	}
}

// RegisterRoutes registers the upload route behind the admin gate
func (h *UploadHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin/uploads", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/{kind}", h.Upload)
	})
}

// Upload handles a multipart image upload and returns the URL the catalog
// should reference
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	kind := strings.ToLower(chi.URLParam(r, "kind"))
	if !uploadKinds[kind] {
		middleware.RespondWithError(w, http.StatusBadRequest, "unknown upload kind")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	url, err := h.store.Save(kind, header.Filename, file)
	if err != nil {
		h.logger.Error("Failed to store upload", zap.Error(err), zap.String("kind", kind))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	h.logger.Info("Image uploaded", zap.String("kind", kind), zap.String("url", url))
	middleware.RespondWithJSON(w, http.StatusCreated, UploadResponse{URL: url})
}

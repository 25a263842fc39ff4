package transport

import (
	"net/http"

	"inza-store/internal/middleware"
	"inza-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ContentHandler handles admin HTTP requests for AI listing content
type ContentHandler struct {
	generator service.ContentGenerator
	logger    *zap.Logger
}

// NewContentHandler creates a new ContentHandler
func NewContentHandler(generator service.ContentGenerator, logger *zap.Logger) *ContentHandler {
	return &ContentHandler{
		generator: generator,
		logger:    logger,
	}
}

// RegisterRoutes registers the content generation route behind the admin gate
func (h *ContentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/api/admin/content", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Post("/generate", h.Generate)
	})
}

// Generate handles producing listing content for a product name. Which
// generator backs the response is a deployment concern the client never
// sees.
func (h *ContentHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req service.GenerationOptions
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	content, err := h.generator.Generate(r.Context(), req)
	if err != nil {
		h.logger.Error("Content generation failed", zap.Error(err), zap.String("product_name", req.ProductName))
		middleware.RespondWithError(w, http.StatusBadGateway, "content generation failed")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, content)
}

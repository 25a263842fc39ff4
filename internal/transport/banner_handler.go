package transport

import (
	"errors"
	"net/http"

	"inza-store/internal/domain"
	"inza-store/internal/middleware"
	"inza-store/internal/repository"
	"inza-store/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// BannerRequest represents the create/update banner payload
type BannerRequest struct {
	Name        string `json:"name" validate:"required"`
	ImageURL    string `json:"image_url" validate:"required"`
	Position    int    `json:"position" validate:"gte=0"`
	IsActive    bool   `json:"is_active"`
	Description string `json:"description"`
	ButtonText  string `json:"button_text"`
	ButtonLink  string `json:"button_link"`
}

// ReorderRequest represents the banner reorder payload: every banner ID in
// the desired display order
type ReorderRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// BannerHandler handles HTTP requests for promotional banners
type BannerHandler struct {
	bannerService service.BannerService
	logger        *zap.Logger
}

// NewBannerHandler creates a new BannerHandler
func NewBannerHandler(bannerService service.BannerService, logger *zap.Logger) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
		logger:        logger,
	}
}

// RegisterRoutes registers public and admin banner routes
func (h *BannerHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Get("/api/banners", h.ListActive)

	r.Route("/api/admin/banners", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.ListAll)
		r.Post("/", h.Create)
		r.Put("/reorder", h.Reorder)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// ListActive handles the public banner listing, active banners only
func (h *BannerHandler) ListActive(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerService.ListActive(r.Context())
	if err != nil {
		h.logger.Error("Failed to list banners", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list banners")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, banners)
}

// ListAll handles the admin banner listing, including inactive banners
func (h *BannerHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	banners, err := h.bannerService.ListAll(r.Context())
	if err != nil {
		h.logger.Error("Failed to list banners", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list banners")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, banners)
}

// Create handles admin banner creation
func (h *BannerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req BannerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	banner, err := h.bannerService.Create(r.Context(), req.toDomain())
	if err != nil {
		h.logger.Error("Failed to create banner", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create banner")
		return
	}

	h.logger.Info("Banner created", zap.String("banner_id", banner.ID.String()), zap.String("name", banner.Name))
	middleware.RespondWithJSON(w, http.StatusCreated, banner)
}

// Update handles admin banner updates
func (h *BannerHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid banner ID")
		return
	}

	var req BannerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	banner := req.toDomain()
	banner.ID = id

	if err := h.bannerService.Update(r.Context(), banner); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "banner not found")
			return
		}
		h.logger.Error("Failed to update banner", zap.Error(err), zap.String("banner_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update banner")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "banner updated"})
}

// Delete handles admin banner deletion
func (h *BannerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid banner ID")
		return
	}

	if err := h.bannerService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "banner not found")
			return
		}
		h.logger.Error("Failed to delete banner", zap.Error(err), zap.String("banner_id", id.String()))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete banner")
		return
	}

	h.logger.Info("Banner deleted", zap.String("banner_id", id.String()))
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "banner deleted"})
}

// Reorder handles rewriting banner positions to match the submitted order
func (h *BannerHandler) Reorder(w http.ResponseWriter, r *http.Request) {
	var req ReorderRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			middleware.RespondWithError(w, http.StatusBadRequest, "invalid banner ID")
			return
		}
		ids = append(ids, id)
	}

	if err := h.bannerService.Reorder(r.Context(), ids); err != nil {
		if errors.Is(err, repository.ErrBannerNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "banner not found")
			return
		}
		h.logger.Error("Failed to reorder banners", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to reorder banners")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "banners reordered"})
}

func (req *BannerRequest) toDomain() *domain.Banner {
	return &domain.Banner{
		Name:        req.Name,
		ImageURL:    req.ImageURL,
		Position:    req.Position,
		IsActive:    req.IsActive,
		Description: req.Description,
		ButtonText:  req.ButtonText,
		ButtonLink:  req.ButtonLink,
	}
}

package transport

import (
	"errors"
	"net/http"

	"inza-store/internal/middleware"
	"inza-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AdminLoginRequest represents the dashboard login payload
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse represents the issued session token
type AdminLoginResponse struct {
	Token string `json:"token"`
}

// AdminHandler handles HTTP requests for dashboard authentication
type AdminHandler struct {
	adminService service.AdminService
	logger       *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		logger:       logger,
	}
}

// RegisterRoutes registers the admin login route
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/admin/login", h.Login)
}

// Login handles the dashboard password exchange for a session token
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req AdminLoginRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.adminService.Login(req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPassword) {
			h.logger.Warn("Admin login rejected")
			middleware.RespondWithError(w, http.StatusUnauthorized, "invalid password")
			return
		}
		h.logger.Error("Admin login failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to login")
		return
	}

	h.logger.Info("Admin logged in")
	middleware.RespondWithJSON(w, http.StatusOK, AdminLoginResponse{Token: token})
}

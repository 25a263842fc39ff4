package transport

import (
	"errors"
	"net/http"

	"inza-store/internal/domain"
	"inza-store/internal/middleware"
	"inza-store/internal/repository"
	"inza-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest represents the order submission payload
type CheckoutRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Address string `json:"address" validate:"required"`
}

// CheckoutHandler handles HTTP requests for order submission
type CheckoutHandler struct {
	checkoutService service.CheckoutService
	logger          *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkoutService service.CheckoutService, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		logger:          logger,
	}
}

// RegisterRoutes registers the checkout route
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Post("/api/checkout", h.PlaceOrder)
}

// PlaceOrder handles order submission. The reservation transaction either
// commits the order with every stock decrement or changes nothing; any
// rejection leaves the cart intact so the customer can correct it.
func (h *CheckoutHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	token, ok := cartToken(w, r)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := h.checkoutService.PlaceOrder(r.Context(), token, domain.Customer{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address,
	})
	if err != nil {
		var validationErr *service.ValidationError
		var stockErr *repository.InsufficientStockError

		switch {
		case errors.As(err, &validationErr):
			middleware.RespondWithError(w, http.StatusBadRequest, validationErr.Message)
		case errors.As(err, &stockErr):
			middleware.RespondWithErrorDetails(w, http.StatusConflict, "insufficient stock", map[string]interface{}{
				"product_name":   stockErr.ProductName,
				"variation_name": stockErr.VariationName,
				"requested":      stockErr.Requested,
				"available":      stockErr.Available,
			})
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "a product in the cart no longer exists")
		case errors.Is(err, repository.ErrReservationConflict):
			middleware.RespondWithError(w, http.StatusConflict, "the store is busy, please try again")
		default:
			h.logger.Error("Checkout failed", zap.Error(err))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to place order")
		}
		return
	}

	h.logger.Info("Order placed",
		zap.String("order_id", result.Order.ID.String()),
		zap.Int64("total", result.Order.Total),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, result)
}

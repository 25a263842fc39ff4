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

// CartTokenHeader carries the opaque client cart token. The storefront
// generates one per browser and sends it on every cart request.
const CartTokenHeader = "X-Cart-Token"

// AddItemRequest represents the add-to-cart payload
type AddItemRequest struct {
	ProductID     string `json:"product_id" validate:"required,uuid"`
	VariationName string `json:"variation_name,omitempty"`
}

// SetQuantityRequest represents the quantity update payload. A quantity of
// zero removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// CartResponse represents the cart contents with a computed total
type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Total int64             `json:"total"`
}

// CartHandler handles HTTP requests for the server-side cart
type CartHandler struct {
	cartService service.CartService
	logger      *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService service.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		cartService: cartService,
		logger:      logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Post("/items", h.AddItem)
		r.Patch("/items/{lineID}", h.SetQuantity)
		r.Delete("/", h.ClearCart)
	})
}

// GetCart handles fetching the cart for the request's token
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	token, ok := cartToken(w, r)
	if !ok {
		return
	}

	items, err := h.cartService.Get(r.Context(), token)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cartResponse(items))
}

// AddItem handles adding one unit of a product (or variation) to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	token, ok := cartToken(w, r)
	if !ok {
		return
	}

	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	items, err := h.cartService.AddItem(r.Context(), token, productID, req.VariationName)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		case errors.Is(err, service.ErrVariationUnknown):
			middleware.RespondWithError(w, http.StatusBadRequest, "product has no such variation")
		case errors.Is(err, service.ErrQuantityUnavailable):
			middleware.RespondWithError(w, http.StatusConflict, "requested quantity is not available")
		default:
			h.logger.Error("Failed to add cart item", zap.Error(err), zap.String("product_id", req.ProductID))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to add item to cart")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cartResponse(items))
}

// SetQuantity handles updating one cart line's quantity
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	token, ok := cartToken(w, r)
	if !ok {
		return
	}

	lineID := chi.URLParam(r, "lineID")

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	items, err := h.cartService.SetQuantity(r.Context(), token, lineID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCartLineNotFound):
			middleware.RespondWithError(w, http.StatusNotFound, "cart line not found")
		case errors.Is(err, service.ErrQuantityUnavailable):
			middleware.RespondWithError(w, http.StatusConflict, "requested quantity is not available")
		default:
			h.logger.Error("Failed to update cart line", zap.Error(err), zap.String("line_id", lineID))
			middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update cart")
		}
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, cartResponse(items))
}

// ClearCart handles emptying the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	token, ok := cartToken(w, r)
	if !ok {
		return
	}

	if err := h.cartService.Clear(r.Context(), token); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}

func cartToken(w http.ResponseWriter, r *http.Request) (string, bool) {
	token := r.Header.Get(CartTokenHeader)
	if token == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "missing cart token")
		return "", false
	}
	return token, true
}

func cartResponse(items []domain.CartItem) CartResponse {
	var total int64
	for i := range items {
		total += items[i].UnitPrice() * int64(items[i].Quantity)
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{Items: items, Total: total}
}

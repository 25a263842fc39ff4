package service

import (
	"context"
	"fmt"
	"strings"

	"inza-store/internal/config"
	"inza-store/internal/domain"
	"inza-store/internal/repository"

	"go.uber.org/zap"
)

// ValidationError reports a checkout request rejected before any store
// interaction: empty cart, non-positive quantity, missing customer fields.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// CheckoutResult is everything the storefront needs after a successful
// reservation: the order, the WhatsApp summary, and the deep link.
type CheckoutResult struct {
	Order       *domain.Order `json:"order"`
	Message     string        `json:"message"`
	WhatsAppURL string        `json:"whatsapp_url"`
}

// CheckoutService converts a cart into a durable order through the stock
// reservation transaction.
type CheckoutService interface {
	PlaceOrder(ctx context.Context, cartToken string, customer domain.Customer) (*CheckoutResult, error)
}

type checkoutService struct {
	orderRepo repository.OrderRepository
	carts     CartService
	store     config.StoreConfig
	logger    *zap.Logger
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(orderRepo repository.OrderRepository, carts CartService, store config.StoreConfig, logger *zap.Logger) CheckoutService {
	return &checkoutService{
		orderRepo: orderRepo,
		carts:     carts,
		store:     store,
		logger:    logger,
	}
}

// PlaceOrder validates the request, runs the reservation transaction, and
// clears the cart only once the store has confirmed the commit. On any
// failure the cart is left intact for correction; an unknown outcome
// (transport error) is treated as not committed.
func (s *checkoutService) PlaceOrder(ctx context.Context, cartToken string, customer domain.Customer) (*CheckoutResult, error) {
	customer.Name = strings.TrimSpace(customer.Name)
	customer.Phone = strings.TrimSpace(customer.Phone)
	customer.Address = strings.TrimSpace(customer.Address)

	if customer.Name == "" {
		return nil, &ValidationError{Field: "name", Message: "customer name is required"}
	}
	if customer.Phone == "" {
		return nil, &ValidationError{Field: "phone", Message: "customer phone is required"}
	}
	if customer.Address == "" {
		return nil, &ValidationError{Field: "address", Message: "customer address is required"}
	}

	items, err := s.carts.Get(ctx, cartToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}
	if len(items) == 0 {
		return nil, &ValidationError{Field: "cart", Message: "cart is empty"}
	}

	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, &ValidationError{Field: "quantity", Message: fmt.Sprintf("line %s has a non-positive quantity", item.LineID)}
		}
		lines = append(lines, item.Line())
	}

	orderID, err := s.orderRepo.PlaceOrder(ctx, lines, customer)
	if err != nil {
		s.logger.Warn("Reservation failed",
			zap.String("cart_token", cartToken),
			zap.Int("lines", len(lines)),
			zap.Error(err),
		)
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load created order %s: %w", orderID, err)
	}

	message := BuildOrderMessage(s.store.Name, order)

	// The reservation is durable at this point; a failed cart clear must
	// not fail the checkout.
	if err := s.carts.Clear(ctx, cartToken); err != nil {
		s.logger.Error("Failed to clear cart after successful reservation",
			zap.String("cart_token", cartToken),
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
	}

	s.logger.Info("Order placed",
		zap.String("order_id", orderID.String()),
		zap.Int64("total", order.Total),
		zap.Int("lines", len(lines)),
	)

	return &CheckoutResult{
		Order:       order,
		Message:     message,
		WhatsAppURL: WhatsAppLink(s.store.WhatsAppPhone, message),
	}, nil
}

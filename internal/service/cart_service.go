package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"inza-store/internal/domain"
	"inza-store/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrCartLineNotFound = errors.New("cart line not found")
	ErrVariationUnknown = errors.New("product has no such variation")

	// ErrQuantityUnavailable means the requested quantity exceeds the stock
	// snapshot the cart holds; the reservation re-checks at checkout anyway.
	ErrQuantityUnavailable = errors.New("requested quantity is not available in stock")
)

// cartTTL keeps abandoned carts around long enough to survive reloads and
// return visits without accumulating forever.
const cartTTL = 30 * 24 * time.Hour

// CartService manages server-side carts keyed by a client cart token.
// The cart is an ordered list of product snapshots; it is only
// reconciled against live stock by the reservation at checkout.
type CartService interface {
	Get(ctx context.Context, token string) ([]domain.CartItem, error)
	AddItem(ctx context.Context, token string, productID uuid.UUID, variationName string) ([]domain.CartItem, error)
	SetQuantity(ctx context.Context, token string, lineID string, quantity int) ([]domain.CartItem, error)
	Clear(ctx context.Context, token string) error
}

type cartService struct {
	redis       *redis.Client
	productRepo repository.ProductRepository
}

// NewCartService creates a new instance of CartService
func NewCartService(redisClient *redis.Client, productRepo repository.ProductRepository) CartService {
	return &cartService{
		redis:       redisClient,
		productRepo: productRepo,
	}
}

func cartKey(token string) string {
	return "cart:" + token
}

// Get returns the cart for the given token, empty when none exists
func (s *cartService) Get(ctx context.Context, token string) ([]domain.CartItem, error) {
	data, err := s.redis.Get(ctx, cartKey(token)).Bytes()
	if err == redis.Nil {
		return []domain.CartItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return items, nil
}

// AddItem adds one unit of a product (or one of its variations) to the
// cart, merging into an existing line for the same product+variation pair.
func (s *cartService) AddItem(ctx context.Context, token string, productID uuid.UUID, variationName string) ([]domain.CartItem, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var variation *domain.Variation
	if variationName != "" {
		variation = product.FindVariation(variationName)
		if variation == nil {
			return nil, ErrVariationUnknown
		}
	}

	items, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	lineID := domain.CartLineID(productID, variationName)
	available := product.Stock
	if variation != nil {
		available = variation.Stock
	}

	for i := range items {
		if items[i].LineID == lineID {
			if items[i].Quantity >= available {
				return nil, ErrQuantityUnavailable
			}
			items[i].Quantity++
			return items, s.save(ctx, token, items)
		}
	}

	if available < 1 {
		return nil, ErrQuantityUnavailable
	}

	items = append(items, domain.CartItem{
		Product:           *product,
		LineID:            lineID,
		Quantity:          1,
		SelectedVariation: variation,
	})
	return items, s.save(ctx, token, items)
}

// SetQuantity sets a line's quantity; zero or less removes the line.
func (s *cartService) SetQuantity(ctx context.Context, token string, lineID string, quantity int) ([]domain.CartItem, error) {
	items, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	for i := range items {
		if items[i].LineID != lineID {
			continue
		}

		if quantity <= 0 {
			items = append(items[:i], items[i+1:]...)
			return items, s.save(ctx, token, items)
		}
		if quantity > items[i].AvailableStock() {
			return nil, ErrQuantityUnavailable
		}
		items[i].Quantity = quantity
		return items, s.save(ctx, token, items)
	}

	return nil, ErrCartLineNotFound
}

// Clear removes the cart entirely. Called by checkout only after the
// reservation has been confirmed committed.
func (s *cartService) Clear(ctx context.Context, token string) error {
	if err := s.redis.Del(ctx, cartKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *cartService) save(ctx context.Context, token string, items []domain.CartItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := s.redis.Set(ctx, cartKey(token), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to store cart: %w", err)
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"inza-store/internal/domain"
	"inza-store/internal/repository"

	"github.com/google/uuid"
)

// OrderService exposes the administrator's view of orders: listing and
// status transitions. Order creation happens only through checkout.
type OrderService interface {
	List(ctx context.Context) ([]*domain.Order, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

type orderService struct {
	orderRepo repository.OrderRepository
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(orderRepo repository.OrderRepository) OrderService {
	return &orderService{orderRepo: orderRepo}
}

func (s *orderService) List(ctx context.Context) ([]*domain.Order, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateStatus applies a status transition. The repository enforces the
// state machine; an unknown status is rejected here first.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown status %q", repository.ErrInvalidStatusTransition, status)
	}
	return s.orderRepo.UpdateStatus(ctx, id, status)
}

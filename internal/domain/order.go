package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "new"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusNew, OrderStatusInProgress, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order may move from s to target.
// Re-applying the current status is an idempotent no-op; delivered and
// cancelled are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if s == target {
		return true
	}
	switch s {
	case OrderStatusNew:
		return target == OrderStatusInProgress || target == OrderStatusCancelled
	case OrderStatusInProgress:
		return target == OrderStatusDelivered || target == OrderStatusCancelled
	}
	return false
}

// Customer holds the free-text contact details collected at checkout.
// Fields are trimmed and must be non-empty at submission.
type Customer struct {
	Name    string `json:"name" db:"customer_name"`
	Phone   string `json:"phone" db:"customer_phone"`
	Address string `json:"address" db:"customer_address"`
}

// OrderItem is the immutable snapshot of one cart line at checkout time.
// UnitPrice is the price observed inside the reservation transaction.
type OrderItem struct {
	ID            uuid.UUID `json:"id" db:"id"`
	OrderID       uuid.UUID `json:"order_id" db:"order_id"`
	ProductID     uuid.UUID `json:"product_id" db:"product_id"`
	ProductName   string    `json:"product_name" db:"product_name"`
	VariationName string    `json:"variation_name,omitempty" db:"variation_name"`
	LineIndex     int       `json:"line_index" db:"line_index"`
	UnitPrice     int64     `json:"unit_price" db:"unit_price"`
	Quantity      int       `json:"quantity" db:"quantity"`
	Subtotal      int64     `json:"subtotal" db:"subtotal"`
}

// Order is created atomically with the stock decrement and never deleted.
// Status is mutated only by an administrator.
type Order struct {
	ID        uuid.UUID   `json:"id" db:"id"`
	Customer  Customer    `json:"customer"`
	Items     []OrderItem `json:"items"`
	Total     int64       `json:"total" db:"total"`
	Status    OrderStatus `json:"status" db:"status"`
	CreatedAt time.Time   `json:"created_at" db:"created_at"`
}

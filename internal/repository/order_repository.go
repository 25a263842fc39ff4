package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"inza-store/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrOrderNotFound = errors.New("order not found")

	// ErrReservationConflict is returned when the reservation transaction
	// kept colliding with concurrent reservations and ran out of attempts.
	ErrReservationConflict = errors.New("reservation aborted after repeated conflicts")

	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// InsufficientStockError names the first cart line whose recorded stock
// could not cover the requested quantity.
type InsufficientStockError struct {
	ProductName   string
	VariationName string
	Requested     int
	Available     int
}

func (e *InsufficientStockError) Error() string {
	if e.VariationName != "" {
		return fmt.Sprintf("insufficient stock for %s (%s): requested %d, available %d",
			e.ProductName, e.VariationName, e.Requested, e.Available)
	}
	return fmt.Sprintf("insufficient stock for %s: requested %d, available %d",
		e.ProductName, e.Requested, e.Available)
}

// reservationMaxAttempts bounds the serialization-failure retry loop.
const reservationMaxAttempts = 3

// OrderRepository defines the interface for order data access. PlaceOrder
// is the only code path that decrements stock.
type OrderRepository interface {
	PlaceOrder(ctx context.Context, lines []domain.CartLine, customer domain.Customer) (uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

// PlaceOrder atomically verifies and decrements stock for every cart line
// and creates the order record. The transaction runs at SERIALIZABLE
// isolation: a concurrent reservation touching the same rows aborts one of
// the two with SQLSTATE 40001, and the whole procedure re-executes from the
// first read, up to reservationMaxAttempts, before surfacing
// ErrReservationConflict. On any failure no stock decrement is visible.
func (r *orderRepository) PlaceOrder(ctx context.Context, lines []domain.CartLine, customer domain.Customer) (uuid.UUID, error) {
	var lastErr error
	for attempt := 0; attempt < reservationMaxAttempts; attempt++ {
		orderID, err := r.reserve(ctx, lines, customer)
		if err == nil {
			return orderID, nil
		}
		if !isSerializationFailure(err) {
			return uuid.Nil, err
		}
		lastErr = err
	}
	return uuid.Nil, fmt.Errorf("%w: %v", ErrReservationConflict, lastErr)
}

// reserve performs one attempt of the reservation transaction.
func (r *orderRepository) reserve(ctx context.Context, lines []domain.CartLine, customer domain.Customer) (uuid.UUID, error) {
	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin reservation: %w", err)
	}
	defer tx.Rollback()

	orderID := uuid.New()
	var total int64
	items := make([]domain.OrderItem, 0, len(lines))

	for i, line := range lines {
		var (
			productName string
			basePrice   int64
			baseStock   int
		)
		err := tx.QueryRowContext(ctx,
			`SELECT name, price, stock FROM products WHERE id = $1`,
			line.ProductID,
		).Scan(&productName, &basePrice, &baseStock)
		if err != nil {
			if err == sql.ErrNoRows {
				return uuid.Nil, fmt.Errorf("product %s: %w", line.ProductID, ErrProductNotFound)
			}
			return uuid.Nil, fmt.Errorf("failed to read product %s: %w", line.ProductID, err)
		}

		unitPrice := basePrice

		if line.VariationName != "" {
			var (
				variationPrice int64
				variationStock int
			)
			err := tx.QueryRowContext(ctx,
				`SELECT price, stock FROM product_variations WHERE product_id = $1 AND name = $2`,
				line.ProductID, line.VariationName,
			).Scan(&variationPrice, &variationStock)
			if err != nil {
				if err == sql.ErrNoRows {
					// A vanished variation reads as zero available stock
					return uuid.Nil, &InsufficientStockError{
						ProductName:   productName,
						VariationName: line.VariationName,
						Requested:     line.Quantity,
					}
				}
				return uuid.Nil, fmt.Errorf("failed to read variation %q of %s: %w", line.VariationName, line.ProductID, err)
			}
			if variationStock < line.Quantity {
				return uuid.Nil, &InsufficientStockError{
					ProductName:   productName,
					VariationName: line.VariationName,
					Requested:     line.Quantity,
					Available:     variationStock,
				}
			}

			// The new stock value is computed from the snapshot read above,
			// never from anything the client supplied.
			_, err = tx.ExecContext(ctx,
				`UPDATE product_variations SET stock = $1 WHERE product_id = $2 AND name = $3`,
				variationStock-line.Quantity, line.ProductID, line.VariationName,
			)
			if err != nil {
				return uuid.Nil, fmt.Errorf("failed to decrement variation stock: %w", err)
			}
			unitPrice = variationPrice
		} else {
			if baseStock < line.Quantity {
				return uuid.Nil, &InsufficientStockError{
					ProductName: productName,
					Requested:   line.Quantity,
					Available:   baseStock,
				}
			}
			_, err = tx.ExecContext(ctx,
				`UPDATE products SET stock = $1, updated_at = NOW() WHERE id = $2`,
				baseStock-line.Quantity, line.ProductID,
			)
			if err != nil {
				return uuid.Nil, fmt.Errorf("failed to decrement product stock: %w", err)
			}
		}

		subtotal := unitPrice * int64(line.Quantity)
		total += subtotal
		items = append(items, domain.OrderItem{
			ID:            uuid.New(),
			OrderID:       orderID,
			ProductID:     line.ProductID,
			ProductName:   productName,
			VariationName: line.VariationName,
			LineIndex:     i,
			UnitPrice:     unitPrice,
			Quantity:      line.Quantity,
			Subtotal:      subtotal,
		})
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, customer_name, customer_phone, customer_address, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
	`, orderID, customer.Name, customer.Phone, customer.Address, total, domain.OrderStatusNew)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create order: %w", err)
	}

	for _, item := range items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (id, order_id, product_id, product_name, variation_name, line_index, unit_price, quantity, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, item.ID, item.OrderID, item.ProductID, item.ProductName, item.VariationName, item.LineIndex, item.UnitPrice, item.Quantity, item.Subtotal)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to create order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	return orderID, nil
}

// FindByID retrieves an order with its item snapshots
func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	order := &domain.Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, customer_phone, customer_address, total, status, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID,
		&order.Customer.Name,
		&order.Customer.Phone,
		&order.Customer.Address,
		&order.Total,
		&order.Status,
		&order.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID: %w", err)
	}

	if err := r.loadItems(ctx, []*domain.Order{order}); err != nil {
		return nil, err
	}

	return order, nil
}

// List retrieves all orders, newest first
func (r *orderRepository) List(ctx context.Context) ([]*domain.Order, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, customer_phone, customer_address, total, status, created_at
		FROM orders
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := []*domain.Order{}
	for rows.Next() {
		order := &domain.Order{}
		err := rows.Scan(
			&order.ID,
			&order.Customer.Name,
			&order.Customer.Phone,
			&order.Customer.Address,
			&order.Total,
			&order.Status,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// UpdateStatus applies an administrator status transition. Re-applying the
// current status is a no-op; anything else must follow the order state
// machine.
func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin status update: %w", err)
	}
	defer tx.Rollback()

	var current domain.OrderStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM orders WHERE id = $1 FOR UPDATE`, id).Scan(&current)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to read order status: %w", err)
	}

	if current == status {
		return tx.Commit()
	}
	if !current.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, current, status)
	}

	if _, err := tx.ExecContext(ctx, `UPDATE orders SET status = $1 WHERE id = $2`, status, id); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	return tx.Commit()
}

func (r *orderRepository) loadItems(ctx context.Context, orders []*domain.Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[uuid.UUID]*domain.Order, len(orders))
	ids := make([]uuid.UUID, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, order_id, product_id, product_name, variation_name, line_index, unit_price, quantity, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, line_index
	`, ids)
	if err != nil {
		return fmt.Errorf("failed to load order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.VariationName,
			&item.LineIndex,
			&item.UnitPrice,
			&item.Quantity,
			&item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

// isSerializationFailure reports whether err is a PostgreSQL serialization
// failure or deadlock, both of which are safe to retry from scratch.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

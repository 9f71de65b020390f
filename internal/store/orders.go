package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/iamblessed-asd/order-api/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateOrder inserts an order and fills in its ID. Orders are created by
// seed tooling and tests; the HTTP surface only populates existing orders.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	if order.OrderDate.IsZero() {
		order.OrderDate = time.Now().UTC()
	}
	return s.db.GetContext(ctx, &order.ID,
		"INSERT INTO orders (client_id, order_date, total_price) VALUES ($1, $2, $3) RETURNING id",
		order.ClientID, order.OrderDate, order.TotalPrice)
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", id, ErrOrderNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByDateDesc retrieves all orders, newest first
func (s *Store) GetOrdersByDateDesc(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders, "SELECT * FROM orders ORDER BY order_date DESC")
	return orders, err
}

// GetOrderItemsByOrderID retrieves all line items for an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	return items, err
}

// orderTotal computes the current total for an order from its line items
// at current nomenclature prices.
func orderTotal(ctx context.Context, q sqlx.QueryerContext, orderID int64) (float64, error) {
	var total float64
	err := sqlx.GetContext(ctx, q, &total, `
		SELECT COALESCE(SUM(n.price * oi.quantity), 0)
		FROM order_items oi
		JOIN nomenclature n ON n.id = oi.item_id
		WHERE oi.order_id = $1`, orderID)
	return total, err
}

// RecomputeOrderTotal recomputes and persists an order's total, returning
// the new value. Used for lazy recomputation on read.
func (s *Store) RecomputeOrderTotal(ctx context.Context, orderID int64) (float64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	total, err := orderTotal(ctx, tx, orderID)
	if err != nil {
		return 0, fmt.Errorf("failed to compute order total: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE orders SET total_price = $1 WHERE id = $2", total, orderID); err != nil {
		return 0, fmt.Errorf("failed to persist order total: %w", err)
	}

	return total, tx.Commit()
}

// AddItemResult reports the state after a successful AddOrderItem
type AddItemResult struct {
	LineQuantity   int
	RemainingStock int
	OrderTotal     float64
}

// AddOrderItem adds quantity of an inventory item to an order in a single
// transaction: stock check, line-item upsert (merging with any existing line
// for the same item), stock decrement, and total recomputation. Any failure
// rolls back the whole request.
func (s *Store) AddOrderItem(ctx context.Context, orderID, itemID int64, quantity int) (*AddItemResult, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var item models.Nomenclature
	err = tx.GetContext(ctx, &item,
		"SELECT * FROM nomenclature WHERE id = $1"+s.lockSuffix(), itemID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("nomenclature %d: %w", itemID, ErrItemNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lock nomenclature: %w", err)
	}

	var order models.Order
	err = tx.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", orderID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %d: %w", orderID, ErrOrderNotFound)
	}
	if err != nil {
		return nil, err
	}

	if item.Quantity < quantity {
		return nil, fmt.Errorf("stock %d, requested %d: %w", item.Quantity, quantity, ErrInsufficientStock)
	}

	lineQuantity := quantity
	var existing models.OrderItem
	err = tx.GetContext(ctx, &existing,
		"SELECT * FROM order_items WHERE order_id = $1 AND item_id = $2"+s.lockSuffix(),
		orderID, itemID)
	switch {
	case err == nil:
		lineQuantity = existing.Quantity + quantity
		if item.Quantity < lineQuantity {
			return nil, fmt.Errorf("stock %d, line would become %d: %w",
				item.Quantity, lineQuantity, ErrInsufficientStockIncrease)
		}
		if _, err := tx.ExecContext(ctx,
			"UPDATE order_items SET quantity = $1 WHERE id = $2",
			lineQuantity, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to update order item: %w", err)
		}
	case errors.Is(err, sql.ErrNoRows):
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO order_items (order_id, item_id, quantity) VALUES ($1, $2, $3)",
			orderID, itemID, quantity); err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	default:
		return nil, err
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE nomenclature SET quantity = quantity - $1 WHERE id = $2",
		quantity, itemID); err != nil {
		return nil, fmt.Errorf("failed to decrement stock: %w", err)
	}

	total, err := orderTotal(ctx, tx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute order total: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE orders SET total_price = $1 WHERE id = $2", total, orderID); err != nil {
		return nil, fmt.Errorf("failed to persist order total: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &AddItemResult{
		LineQuantity:   lineQuantity,
		RemainingStock: item.Quantity - quantity,
		OrderTotal:     total,
	}, nil
}

// ClientOrderSummary sums spend across all of a client's orders. An empty
// result means the client has no orders (or does not exist).
func (s *Store) ClientOrderSummary(ctx context.Context, clientID int64) ([]models.ClientOrderSummary, error) {
	var rows []models.ClientOrderSummary
	err := s.db.SelectContext(ctx, &rows, `
		SELECT c.name AS name, SUM(n.price * oi.quantity) AS total
		FROM clients c
		JOIN orders o ON o.client_id = c.id
		JOIN order_items oi ON oi.order_id = o.id
		JOIN nomenclature n ON n.id = oi.item_id
		WHERE c.id = $1
		GROUP BY c.id, c.name`, clientID)
	return rows, err
}

// TopPopularItems sums quantities sold per (nomenclature, category) for
// orders dated at or after since, best sellers first. Ties break arbitrarily.
func (s *Store) TopPopularItems(ctx context.Context, since time.Time, limit int) ([]models.PopularItem, error) {
	var rows []models.PopularItem
	err := s.db.SelectContext(ctx, &rows, `
		SELECT n.name AS nomenclature_name, c.name AS category_name, SUM(oi.quantity) AS total_sold
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN nomenclature n ON n.id = oi.item_id
		JOIN categories c ON c.id = n.category_id
		WHERE o.order_date >= $1
		GROUP BY n.id, n.name, c.id, c.name
		ORDER BY total_sold DESC
		LIMIT $2`, since, limit)
	return rows, err
}
